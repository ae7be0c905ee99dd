package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"blog-post-service/internal/custom_errors"
	model "blog-post-service/internal/domain/models"
	ports "blog-post-service/internal/domain/ports/output"
)

// PostCache keeps public post views keyed by post id.
type PostCache struct {
	client *Client
	log    ports.Logger
}

func NewPostCache(client *Client, log ports.Logger) *PostCache {
	return &PostCache{
		client: client,
		log:    log,
	}
}

func (p *PostCache) GetPost(ctx context.Context, postID string) (*model.PostView, error) {
	var post model.PostView
	if err := p.client.GetJSON(ctx, postID, &post); err != nil {
		if errors.Is(err, custom_errors.ErrCacheMiss) {
			p.log.Debug("Post cache miss", slog.String("post_id", postID))
			return nil, custom_errors.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get post from cache: %w", err)
	}

	p.log.Debug("Post cache hit", slog.String("post_id", postID))
	return &post, nil
}

func (p *PostCache) SetPost(ctx context.Context, post *model.PostView) error {
	if post == nil {
		return fmt.Errorf("post cannot be nil")
	}

	if err := p.client.SetJSON(ctx, post.ID, post); err != nil {
		return fmt.Errorf("failed to set post cache: %w", err)
	}

	p.log.Debug("Post cached",
		slog.String("post_id", post.ID),
		slog.Duration("ttl", p.client.TTL()))
	return nil
}

func (p *PostCache) DeletePost(ctx context.Context, postID string) error {
	if err := p.client.Delete(ctx, postID); err != nil {
		return fmt.Errorf("failed to delete post from cache: %w", err)
	}
	return nil
}
