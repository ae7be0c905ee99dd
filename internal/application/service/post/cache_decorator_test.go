package post_service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	post_service "blog-post-service/internal/application/service/post"
	"blog-post-service/internal/custom_errors"
	model "blog-post-service/internal/domain/models"
	post_service_port "blog-post-service/internal/domain/ports/input/post"
	"blog-post-service/internal/infrastructure/logger"
	prometheus_metrics "blog-post-service/internal/infrastructure/outbound/metrics/prometheus"
	cache_mock "blog-post-service/mocks/cache"
	post_service_mock "blog-post-service/mocks/post"
)

func newDecorator(t *testing.T) (post_service_port.Service, *post_service_mock.Service, *cache_mock.PostCache) {
	svc := post_service_mock.NewService(t)
	postCache := cache_mock.NewPostCache(t)
	d := post_service.NewPostServiceCacheDecorator(
		svc,
		postCache,
		logger.New("test"),
		prometheus_metrics.NewPrometheusMetricsProvider(),
	)
	return d, svc, postCache
}

func TestPostServiceCacheDecorator_GetPostByID(t *testing.T) {
	view := &model.PostView{ID: "p1", Title: "T", Content: "C", Author: "A B", Created: created}

	tests := []struct {
		name        string
		mocks       func(svc *post_service_mock.Service, postCache *cache_mock.PostCache)
		want        *model.PostView
		wantErrType error
	}{
		{
			name: "Cache hit skips the service",
			mocks: func(svc *post_service_mock.Service, postCache *cache_mock.PostCache) {
				postCache.On("GetPost", mock.Anything, "p1").Return(view, nil)
			},
			want: view,
		},
		{
			name: "Cache miss reads through and populates",
			mocks: func(svc *post_service_mock.Service, postCache *cache_mock.PostCache) {
				postCache.On("GetPost", mock.Anything, "p1").Return(nil, custom_errors.ErrCacheMiss)
				svc.On("GetPostByID", mock.Anything, "p1").Return(view, nil)
				postCache.On("SetPost", mock.Anything, view).Return(nil)
			},
			want: view,
		},
		{
			name: "Cache failure falls back to the service",
			mocks: func(svc *post_service_mock.Service, postCache *cache_mock.PostCache) {
				postCache.On("GetPost", mock.Anything, "p1").Return(nil, errors.New("connection refused"))
				svc.On("GetPostByID", mock.Anything, "p1").Return(view, nil)
				postCache.On("SetPost", mock.Anything, view).Return(errors.New("connection refused"))
			},
			want: view,
		},
		{
			name: "Not found is not cached",
			mocks: func(svc *post_service_mock.Service, postCache *cache_mock.PostCache) {
				postCache.On("GetPost", mock.Anything, "p1").Return(nil, custom_errors.ErrCacheMiss)
				svc.On("GetPostByID", mock.Anything, "p1").Return(nil, custom_errors.ErrPostNotFound)
			},
			wantErrType: custom_errors.ErrPostNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, svc, postCache := newDecorator(t)
			tt.mocks(svc, postCache)

			got, err := d.GetPostByID(context.Background(), "p1")

			if tt.wantErrType != nil {
				assert.ErrorIs(t, err, tt.wantErrType)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPostServiceCacheDecorator_CreatePost(t *testing.T) {
	input := &model.CreatePostDTO{Title: "T", Content: "C", Author: model.Author{FirstName: "A", LastName: "B"}}
	view := &model.PostView{ID: "p1", Title: "T", Content: "C", Author: "A B", Created: created}

	t.Run("Created post is cached", func(t *testing.T) {
		d, svc, postCache := newDecorator(t)
		svc.On("CreatePost", mock.Anything, input).Return(view, nil)
		postCache.On("SetPost", mock.Anything, view).Return(nil)

		got, err := d.CreatePost(context.Background(), input)

		require.NoError(t, err)
		assert.Equal(t, view, got)
	})

	t.Run("Service error leaves cache untouched", func(t *testing.T) {
		d, svc, _ := newDecorator(t)
		svc.On("CreatePost", mock.Anything, input).Return(nil, custom_errors.ErrPostValidation)

		got, err := d.CreatePost(context.Background(), input)

		assert.ErrorIs(t, err, custom_errors.ErrPostValidation)
		assert.Nil(t, got)
	})
}

func TestPostServiceCacheDecorator_ListPosts(t *testing.T) {
	d, svc, _ := newDecorator(t)
	views := []*model.PostView{{ID: "p1"}, {ID: "p2"}}
	svc.On("ListPosts", mock.Anything).Return(views, nil)

	got, err := d.ListPosts(context.Background())

	require.NoError(t, err)
	assert.Equal(t, views, got)
}

func TestPostServiceCacheDecorator_UpdatePost(t *testing.T) {
	update := &model.UpdatePostDTO{Title: strPtr("updated Data")}

	t.Run("Success invalidates cache", func(t *testing.T) {
		d, svc, postCache := newDecorator(t)
		svc.On("UpdatePost", mock.Anything, "p1", update).Return(nil)
		postCache.On("DeletePost", mock.Anything, "p1").Return(nil)

		assert.NoError(t, d.UpdatePost(context.Background(), "p1", update))
	})

	t.Run("Invalidation failure is not an error", func(t *testing.T) {
		d, svc, postCache := newDecorator(t)
		svc.On("UpdatePost", mock.Anything, "p1", update).Return(nil)
		postCache.On("DeletePost", mock.Anything, "p1").Return(errors.New("connection refused"))

		assert.NoError(t, d.UpdatePost(context.Background(), "p1", update))
	})

	t.Run("Service error skips invalidation", func(t *testing.T) {
		d, svc, _ := newDecorator(t)
		svc.On("UpdatePost", mock.Anything, "p1", update).Return(custom_errors.ErrPostNotFound)

		assert.ErrorIs(t, d.UpdatePost(context.Background(), "p1", update), custom_errors.ErrPostNotFound)
	})
}

func TestPostServiceCacheDecorator_DeletePost(t *testing.T) {
	t.Run("Success invalidates cache", func(t *testing.T) {
		d, svc, postCache := newDecorator(t)
		svc.On("DeletePost", mock.Anything, "p1").Return(nil)
		postCache.On("DeletePost", mock.Anything, "p1").Return(nil)

		assert.NoError(t, d.DeletePost(context.Background(), "p1"))
	})

	t.Run("Service error skips invalidation", func(t *testing.T) {
		d, svc, _ := newDecorator(t)
		svc.On("DeletePost", mock.Anything, "p1").Return(custom_errors.ErrStoreUnavailable)

		assert.ErrorIs(t, d.DeletePost(context.Background(), "p1"), custom_errors.ErrStoreUnavailable)
	})
}
