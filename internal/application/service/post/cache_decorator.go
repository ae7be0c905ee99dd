package post_service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"blog-post-service/internal/custom_errors"
	model "blog-post-service/internal/domain/models"
	post_service "blog-post-service/internal/domain/ports/input/post"
	output "blog-post-service/internal/domain/ports/output"
	"blog-post-service/internal/domain/ports/output/cache"
)

type PostServiceCacheDecorator struct {
	service   post_service.Service
	postCache cache.PostCache
	log       output.Logger
	metrics   output.MetricsProvider
}

func NewPostServiceCacheDecorator(
	service post_service.Service,
	postCache cache.PostCache,
	log output.Logger,
	metrics output.MetricsProvider,
) post_service.Service {
	return &PostServiceCacheDecorator{
		service:   service,
		postCache: postCache,
		log:       log,
		metrics:   metrics,
	}
}

func (d *PostServiceCacheDecorator) CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.PostView, error) {
	d.log.Debug("Creating post with cache decorator")

	result, err := d.service.CreatePost(ctx, post)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	if err := d.postCache.SetPost(ctx, result); err != nil {
		d.log.Warn("Failed to cache created post",
			slog.String("post_id", result.ID),
			slog.String("error", err.Error()))
	}
	d.metrics.RecordCacheOperationDuration("post_set", time.Since(start))

	return result, nil
}

func (d *PostServiceCacheDecorator) GetPostByID(ctx context.Context, id string) (*model.PostView, error) {
	d.log.Debug("Getting post by ID with cache decorator", slog.String("post_id", id))

	cacheStart := time.Now()
	cachedPost, err := d.postCache.GetPost(ctx, id)
	d.metrics.RecordCacheOperationDuration("post_get", time.Since(cacheStart))
	if err == nil {
		d.log.Debug("Post found in cache", slog.String("post_id", id))
		d.metrics.IncrementCacheHits()
		return cachedPost, nil
	}

	if !errors.Is(err, custom_errors.ErrCacheMiss) {
		d.log.Warn("Failed to get post from cache",
			slog.String("post_id", id),
			slog.String("error", err.Error()))
	} else {
		d.metrics.IncrementCacheMisses()
	}

	d.log.Debug("Post cache miss, fetching from service", slog.String("post_id", id))
	post, err := d.service.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}

	setCacheStart := time.Now()
	if err := d.postCache.SetPost(ctx, post); err != nil {
		d.log.Warn("Failed to cache post",
			slog.String("post_id", id),
			slog.String("error", err.Error()))
	}
	d.metrics.RecordCacheOperationDuration("post_set", time.Since(setCacheStart))

	return post, nil
}

func (d *PostServiceCacheDecorator) ListPosts(ctx context.Context) ([]*model.PostView, error) {
	return d.service.ListPosts(ctx)
}

func (d *PostServiceCacheDecorator) UpdatePost(ctx context.Context, id string, post *model.UpdatePostDTO) error {
	d.log.Debug("Updating post with cache decorator", slog.String("post_id", id))

	if err := d.service.UpdatePost(ctx, id, post); err != nil {
		return err
	}

	d.invalidate(ctx, id, "update")
	return nil
}

func (d *PostServiceCacheDecorator) DeletePost(ctx context.Context, id string) error {
	d.log.Debug("Deleting post with cache decorator", slog.String("post_id", id))

	if err := d.service.DeletePost(ctx, id); err != nil {
		return err
	}

	d.invalidate(ctx, id, "deletion")
	return nil
}

func (d *PostServiceCacheDecorator) invalidate(ctx context.Context, id, after string) {
	start := time.Now()
	if err := d.postCache.DeletePost(ctx, id); err != nil {
		d.log.Warn("Failed to invalidate post cache after "+after,
			slog.String("post_id", id),
			slog.String("error", err.Error()))
	}
	d.metrics.RecordCacheOperationDuration("post_delete", time.Since(start))
}
