package post_repository_mongo_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-post-service/internal/custom_errors"
	model "blog-post-service/internal/domain/models"
	"blog-post-service/internal/infrastructure/config"
	"blog-post-service/internal/infrastructure/logger"
	prometheus_metrics "blog-post-service/internal/infrastructure/outbound/metrics/prometheus"
	mongo_client "blog-post-service/internal/infrastructure/outbound/repository/mongo"
	post_repository_mongo "blog-post-service/internal/infrastructure/outbound/repository/post/mongo"
)

func setupLiveMongo(t *testing.T) *post_repository_mongo.PostRepository {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("Skipping test - TEST_MONGO_URI not set")
	}

	log := logger.New("test")
	client, err := mongo_client.NewClient(context.Background(), config.Mongo{
		URI:            uri,
		DbName:         "blog_test",
		Collection:     "posts",
		ConnectTimeout: 5 * time.Second,
	}, log)
	require.NoError(t, err)

	repo := post_repository_mongo.NewPostRepository(
		client.Database("blog_test"),
		"posts",
		log,
		prometheus_metrics.NewPrometheusMetricsProvider(),
	)
	t.Cleanup(func() {
		assert.NoError(t, repo.Drop(context.Background()))
		_ = client.Disconnect(context.Background())
	})
	return repo
}

func TestPostRepository_LiveLifecycle(t *testing.T) {
	repo := setupLiveMongo(t)
	ctx := context.Background()

	require.NoError(t, repo.Ping(ctx))

	for i := 0; i < 10; i++ {
		_, err := repo.Create(ctx, &model.Post{
			Title:   gofakeit.Sentence(5),
			Content: gofakeit.Paragraph(1, 3, 10, " "),
			Author:  model.Author{FirstName: gofakeit.FirstName(), LastName: gofakeit.LastName()},
		})
		require.NoError(t, err)
	}

	posts, err := repo.List(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(posts), 10)

	target := posts[0]
	updated, err := repo.Update(ctx, target.ID, &model.UpdatePostDTO{
		Title:   strPtr("updated Data"),
		Content: strPtr("this is updated content"),
		Author: &model.AuthorUpdate{
			FirstName: strPtr("updatedFName"),
			LastName:  strPtr("updatedLName"),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "updated Data", updated.Title)
	assert.Equal(t, model.Author{FirstName: "updatedFName", LastName: "updatedLName"}, updated.Author)
	assert.Equal(t, target.CreatedAt, updated.CreatedAt)

	require.NoError(t, repo.Delete(ctx, target.ID))
	_, err = repo.GetByID(ctx, target.ID)
	assert.Equal(t, custom_errors.ErrPostNotFound, err)
}
