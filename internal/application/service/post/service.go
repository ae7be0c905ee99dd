package post_service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"blog-post-service/internal/custom_errors"
	model "blog-post-service/internal/domain/models"
	output "blog-post-service/internal/domain/ports/output"
	post_repository "blog-post-service/internal/domain/ports/output/post"

	"github.com/go-playground/validator/v10"
)

type PostService struct {
	postRepo post_repository.Repository
	validate *validator.Validate
	log      output.Logger
	metrics  output.MetricsProvider
}

func NewPostService(
	postRepo post_repository.Repository,
	validate *validator.Validate,
	log output.Logger,
	metrics output.MetricsProvider,
) *PostService {
	return &PostService{
		postRepo: postRepo,
		validate: validate,
		log:      log,
		metrics:  metrics,
	}
}

// NewValidator returns a validator that reports fields by their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func describeValidation(err error) string {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return err.Error()
	}
	fields := make([]string, 0, len(vErrs))
	for _, fe := range vErrs {
		ns := fe.Namespace()
		if i := strings.Index(ns, "."); i >= 0 {
			ns = ns[i+1:]
		}
		fields = append(fields, ns+" is "+fe.Tag())
	}
	return strings.Join(fields, ", ")
}

func (s *PostService) storeError(op string, err error) error {
	switch {
	case errors.Is(err, custom_errors.ErrPostNotFound):
		return custom_errors.ErrPostNotFound
	case errors.Is(err, custom_errors.ErrStoreUnavailable):
		s.log.Error("Store unavailable", slog.String("operation", op), slog.String("error", err.Error()))
		return custom_errors.ErrStoreUnavailable
	default:
		s.log.Error("Store query failed", slog.String("operation", op), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
}

func (s *PostService) CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.PostView, error) {
	if post == nil {
		s.metrics.IncrementPostOperations("create", false)
		return nil, custom_errors.ErrPostValidation
	}

	newPost := &model.Post{
		Title:   post.Title,
		Content: post.Content,
		Author:  post.Author,
	}

	trimmed := model.CreatePostDTO{
		Title:   strings.TrimSpace(newPost.Title),
		Content: strings.TrimSpace(newPost.Content),
		Author: model.Author{
			FirstName: strings.TrimSpace(newPost.Author.FirstName),
			LastName:  strings.TrimSpace(newPost.Author.LastName),
		},
	}
	if err := s.validate.Struct(trimmed); err != nil {
		s.metrics.IncrementPostOperations("create", false)
		s.log.Debug("Create post validation failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %s", custom_errors.ErrPostValidation, describeValidation(err))
	}

	created, err := s.postRepo.Create(ctx, newPost)
	if err != nil {
		s.metrics.IncrementPostOperations("create", false)
		return nil, s.storeError("create", err)
	}

	s.metrics.IncrementPostOperations("create", true)
	s.log.Info("Post created", slog.String("id", created.ID))
	return model.NewPostView(created), nil
}

func (s *PostService) GetPostByID(ctx context.Context, id string) (*model.PostView, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		s.metrics.IncrementPostOperations("get", false)
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found", slog.String("id", id))
		}
		return nil, s.storeError("get", err)
	}

	s.metrics.IncrementPostOperations("get", true)
	return model.NewPostView(post), nil
}

func (s *PostService) ListPosts(ctx context.Context) ([]*model.PostView, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		s.metrics.IncrementPostOperations("list", false)
		return nil, s.storeError("list", err)
	}

	views := make([]*model.PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, model.NewPostView(p))
	}

	s.metrics.IncrementPostOperations("list", true)
	return views, nil
}

func blank(v *string) bool {
	return v != nil && strings.TrimSpace(*v) == ""
}

func (s *PostService) validateUpdate(update *model.UpdatePostDTO) error {
	var fields []string
	if blank(update.Title) {
		fields = append(fields, "title")
	}
	if blank(update.Content) {
		fields = append(fields, "content")
	}
	if update.Author != nil {
		if blank(update.Author.FirstName) {
			fields = append(fields, "author.firstName")
		}
		if blank(update.Author.LastName) {
			fields = append(fields, "author.lastName")
		}
	}
	if len(fields) > 0 {
		return fmt.Errorf("%w: %s must not be empty", custom_errors.ErrPostValidation, strings.Join(fields, ", "))
	}
	return nil
}

func (s *PostService) UpdatePost(ctx context.Context, id string, post *model.UpdatePostDTO) error {
	if post == nil {
		s.metrics.IncrementPostOperations("update", false)
		return custom_errors.ErrPostValidation
	}

	if err := s.validateUpdate(post); err != nil {
		s.metrics.IncrementPostOperations("update", false)
		s.log.Debug("Update post validation failed", slog.String("id", id), slog.String("error", err.Error()))
		return err
	}

	// Nothing to apply, but the post must still exist.
	if post.IsEmpty() {
		if _, err := s.postRepo.GetByID(ctx, id); err != nil {
			s.metrics.IncrementPostOperations("update", false)
			return s.storeError("update", err)
		}
		s.metrics.IncrementPostOperations("update", true)
		return nil
	}

	if _, err := s.postRepo.Update(ctx, id, post); err != nil {
		s.metrics.IncrementPostOperations("update", false)
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found for update", slog.String("id", id))
		}
		return s.storeError("update", err)
	}

	s.metrics.IncrementPostOperations("update", true)
	s.log.Info("Post updated", slog.String("id", id))
	return nil
}

func (s *PostService) DeletePost(ctx context.Context, id string) error {
	if err := s.postRepo.Delete(ctx, id); err != nil {
		s.metrics.IncrementPostOperations("delete", false)
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found for delete", slog.String("id", id))
		}
		return s.storeError("delete", err)
	}

	s.metrics.IncrementPostOperations("delete", true)
	s.log.Info("Post deleted", slog.String("id", id))
	return nil
}
