package post_service

import (
	"context"

	model "blog-post-service/internal/domain/models"
)

//go:generate mockery --name Service --dir . --output ../../../../../mocks/post --outpkg mocks --filename Service.go
type Service interface {
	CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.PostView, error)
	GetPostByID(ctx context.Context, id string) (*model.PostView, error)
	ListPosts(ctx context.Context) ([]*model.PostView, error)
	UpdatePost(ctx context.Context, id string, post *model.UpdatePostDTO) error
	DeletePost(ctx context.Context, id string) error
}
