package delivery_http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	post_service "blog-post-service/internal/application/service/post"
	"blog-post-service/internal/custom_errors"
	model "blog-post-service/internal/domain/models"
	delivery_http "blog-post-service/internal/infrastructure/inbound/http"
	"blog-post-service/internal/infrastructure/logger"
	prometheus_metrics "blog-post-service/internal/infrastructure/outbound/metrics/prometheus"
	"blog-post-service/internal/infrastructure/outbound/repository/post/memory"
)

type testServer struct {
	srv  *httptest.Server
	repo *memory.PostRepository
}

func setupServer(t *testing.T) *testServer {
	log := logger.New("test")
	metrics := prometheus_metrics.NewPrometheusMetricsProvider()
	repo := memory.NewPostRepository(log)
	svc := post_service.NewPostService(repo, post_service.NewValidator(), log, metrics)

	server := delivery_http.NewServer(svc, delivery_http.Options{}, log, metrics)
	srv := httptest.NewServer(server.Handler())

	t.Cleanup(func() {
		srv.Close()
		require.NoError(t, repo.Drop(context.Background()))
	})
	return &testServer{srv: srv, repo: repo}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, s.srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (s *testServer) seed(t *testing.T, n int) []*model.Post {
	t.Helper()
	posts := make([]*model.Post, 0, n)
	for i := 0; i < n; i++ {
		p, err := s.repo.Create(context.Background(), &model.Post{
			Title:   gofakeit.Sentence(4),
			Content: gofakeit.Paragraph(1, 3, 12, " "),
			Author: model.Author{
				FirstName: gofakeit.FirstName(),
				LastName:  gofakeit.LastName(),
			},
		})
		require.NoError(t, err)
		posts = append(posts, p)
	}
	return posts
}

func TestServer_ListPosts(t *testing.T) {
	s := setupServer(t)
	s.seed(t, 10)

	resp := s.do(t, http.MethodGet, "/posts", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.GreaterOrEqual(t, len(got), 10)
	for _, p := range got {
		assert.Contains(t, p, "title")
		assert.Contains(t, p, "content")
		assert.Contains(t, p, "author")
	}
}

func TestServer_CreatePost(t *testing.T) {
	s := setupServer(t)

	resp := s.do(t, http.MethodPost, "/posts", map[string]any{
		"title":   "T",
		"content": "C",
		"author":  map[string]string{"firstName": "A", "lastName": "B"},
	})

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var got model.PostView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "T", got.Title)
	assert.Equal(t, "C", got.Content)
	assert.Equal(t, "A B", got.Author)

	stored, err := s.repo.GetByID(context.Background(), got.ID)
	require.NoError(t, err)
	assert.Equal(t, "T", stored.Title)
	assert.Equal(t, "C", stored.Content)
	assert.Equal(t, "A", stored.Author.FirstName)
	assert.Equal(t, "B", stored.Author.LastName)
}

func TestServer_CreatePost_MissingTitle(t *testing.T) {
	s := setupServer(t)

	resp := s.do(t, http.MethodPost, "/posts", map[string]any{
		"content": "C",
		"author":  map[string]string{"firstName": "A", "lastName": "B"},
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	posts, err := s.repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestServer_UpdatePost(t *testing.T) {
	s := setupServer(t)
	existing := s.seed(t, 1)[0]

	resp := s.do(t, http.MethodPut, "/posts/"+existing.ID, map[string]any{
		"id":      existing.ID,
		"title":   "updated Data",
		"content": "this is updated content",
		"author":  map[string]string{"firstName": "updatedFName", "lastName": "updatedLName"},
	})

	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	stored, err := s.repo.GetByID(context.Background(), existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "updated Data", stored.Title)
	assert.Equal(t, "this is updated content", stored.Content)
	assert.Equal(t, "updatedFName", stored.Author.FirstName)
	assert.Equal(t, "updatedLName", stored.Author.LastName)
	assert.Equal(t, existing.CreatedAt, stored.CreatedAt)
}

func TestServer_UpdatePost_Partial(t *testing.T) {
	s := setupServer(t)
	existing := s.seed(t, 1)[0]

	resp := s.do(t, http.MethodPut, "/posts/"+existing.ID, map[string]any{"content": "new content"})

	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	stored, err := s.repo.GetByID(context.Background(), existing.ID)
	require.NoError(t, err)
	assert.Equal(t, existing.Title, stored.Title)
	assert.Equal(t, "new content", stored.Content)
	assert.Equal(t, existing.Author, stored.Author)
}

func TestServer_TitlesWithAngleBrackets(t *testing.T) {
	s := setupServer(t)

	cases := []struct {
		created string
		updated string
	}{
		{created: "Generics <T> in Go", updated: "Generics <K, V> in Go"},
		{created: "Using <div> tags", updated: "Using <span> tags"},
		{created: "a<b and c>d", updated: "c>d and a<b"},
		{created: "<br>", updated: "<hr>"},
	}

	for _, tc := range cases {
		resp := s.do(t, http.MethodPost, "/posts", map[string]any{
			"title":   tc.created,
			"content": "C",
			"author":  map[string]string{"firstName": "A", "lastName": "B"},
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode, tc.created)
		var got model.PostView
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, tc.created, got.Title)

		stored, err := s.repo.GetByID(context.Background(), got.ID)
		require.NoError(t, err)
		assert.Equal(t, tc.created, stored.Title)

		resp = s.do(t, http.MethodPut, "/posts/"+got.ID, map[string]any{"title": tc.updated})
		require.Equal(t, http.StatusNoContent, resp.StatusCode, tc.updated)

		resp = s.do(t, http.MethodGet, "/posts/"+got.ID, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var after model.PostView
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&after))
		assert.Equal(t, tc.updated, after.Title)
	}
}

func TestServer_UpdatePost_MismatchedID(t *testing.T) {
	s := setupServer(t)
	existing := s.seed(t, 1)[0]

	resp := s.do(t, http.MethodPut, "/posts/"+existing.ID, map[string]any{"id": "other", "title": "x"})

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errBody map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
	assert.Contains(t, errBody["message"], custom_errors.ErrInvalidInput.Error())

	stored, err := s.repo.GetByID(context.Background(), existing.ID)
	require.NoError(t, err)
	assert.Equal(t, existing.Title, stored.Title)
}

func TestServer_UpdatePost_NotFound(t *testing.T) {
	s := setupServer(t)

	resp := s.do(t, http.MethodPut, "/posts/missing", map[string]any{"title": "x"})

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_DeletePost(t *testing.T) {
	s := setupServer(t)
	existing := s.seed(t, 1)[0]

	resp := s.do(t, http.MethodDelete, "/posts/"+existing.ID, nil)

	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	_, err := s.repo.GetByID(context.Background(), existing.ID)
	assert.Equal(t, custom_errors.ErrPostNotFound, err)

	again := s.do(t, http.MethodDelete, "/posts/"+existing.ID, nil)
	assert.Equal(t, http.StatusNotFound, again.StatusCode)
}

func TestServer_GetPost(t *testing.T) {
	s := setupServer(t)
	existing := s.seed(t, 1)[0]

	resp := s.do(t, http.MethodGet, "/posts/"+existing.ID, nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got model.PostView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, existing.ID, got.ID)
	assert.Equal(t, existing.Author.FullName(), got.Author)

	missing := s.do(t, http.MethodGet, "/posts/missing", nil)
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
	var errBody map[string]string
	require.NoError(t, json.NewDecoder(missing.Body).Decode(&errBody))
	assert.Equal(t, custom_errors.ErrPostNotFound.Error(), errBody["message"])
}
