package cache

import (
	"context"

	model "blog-post-service/internal/domain/models"
)

//go:generate mockery --name PostCache --dir . --output ../../../../../mocks/cache --outpkg mocks --filename PostCache.go
type PostCache interface {
	GetPost(ctx context.Context, postID string) (*model.PostView, error)
	SetPost(ctx context.Context, post *model.PostView) error
	DeletePost(ctx context.Context, postID string) error
}
