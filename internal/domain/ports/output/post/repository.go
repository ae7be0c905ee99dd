package post_repository

import (
	"context"

	model "blog-post-service/internal/domain/models"
)

//go:generate mockery --name Repository --dir . --output ../../../../../mocks/post --outpkg mocks --filename Repository.go
type Repository interface {
	Create(ctx context.Context, post *model.Post) (*model.Post, error)
	GetByID(ctx context.Context, id string) (*model.Post, error)
	List(ctx context.Context) ([]*model.Post, error)
	Update(ctx context.Context, id string, update *model.UpdatePostDTO) (*model.Post, error)
	Delete(ctx context.Context, id string) error
	// Drop removes every stored post. Used by test teardown.
	Drop(ctx context.Context) error
	Ping(ctx context.Context) error
}
