package post_http

import (
	"context"
	"log/slog"
	"net/http"

	model "blog-post-service/internal/domain/models"
	ports "blog-post-service/internal/domain/ports/output"

	"github.com/labstack/echo/v4"
)

type PostLister interface {
	ListPosts(ctx context.Context) ([]*model.PostView, error)
}

type ListPostsHandler struct {
	postService PostLister
	log         ports.Logger
}

func NewListPostsHandler(postService PostLister, log ports.Logger) *ListPostsHandler {
	return &ListPostsHandler{
		postService: postService,
		log:         log,
	}
}

func (h *ListPostsHandler) ListPosts(c echo.Context) error {
	posts, err := h.postService.ListPosts(c.Request().Context())
	if err != nil {
		h.log.Debug("Error listing posts", slog.String("error", err.Error()))
		return toHTTPError(err)
	}
	if posts == nil {
		posts = []*model.PostView{}
	}

	h.log.Debug("Successfully listed posts", slog.Int("count", len(posts)))
	return c.JSON(http.StatusOK, posts)
}
