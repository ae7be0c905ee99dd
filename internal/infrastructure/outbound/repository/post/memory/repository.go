package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"blog-post-service/internal/custom_errors"
	model "blog-post-service/internal/domain/models"
	ports "blog-post-service/internal/domain/ports/output"

	"github.com/google/uuid"
)

type PostRepository struct {
	log   ports.Logger
	mu    sync.RWMutex
	posts map[string]*model.Post
}

func NewPostRepository(log ports.Logger) *PostRepository {
	return &PostRepository{
		log:   log,
		posts: make(map[string]*model.Post),
	}
}

func (p *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	newPost := &model.Post{
		ID:        uuid.NewString(),
		Title:     post.Title,
		Content:   post.Content,
		Author:    post.Author,
		CreatedAt: time.Now().UTC(),
	}
	p.posts[newPost.ID] = newPost

	p.log.Debug("Post created in memory", slog.String("id", newPost.ID))
	result := *newPost
	return &result, nil
}

func (p *PostRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	post, exists := p.posts[id]
	if !exists {
		p.log.Debug("Post not found by id", slog.String("id", id))
		return nil, custom_errors.ErrPostNotFound
	}

	result := *post
	return &result, nil
}

func (p *PostRepository) List(ctx context.Context) ([]*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	result := make([]*model.Post, 0, len(p.posts))
	for _, post := range p.posts {
		postCopy := *post
		result = append(result, &postCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

func (p *PostRepository) Update(ctx context.Context, id string, update *model.UpdatePostDTO) (*model.Post, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	post, exists := p.posts[id]
	if !exists {
		return nil, custom_errors.ErrPostNotFound
	}

	update.Apply(post)

	result := *post
	return &result, nil
}

func (p *PostRepository) Delete(ctx context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.posts[id]; !exists {
		return custom_errors.ErrPostNotFound
	}

	delete(p.posts, id)
	return nil
}

func (p *PostRepository) Drop(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.log.Warn("Dropping in-memory posts", slog.Int("count", len(p.posts)))
	p.posts = make(map[string]*model.Post)
	return nil
}

func (p *PostRepository) Ping(ctx context.Context) error {
	return nil
}
