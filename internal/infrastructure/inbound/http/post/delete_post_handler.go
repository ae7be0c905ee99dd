package post_http

import (
	"context"
	"log/slog"
	"net/http"

	ports "blog-post-service/internal/domain/ports/output"

	"github.com/labstack/echo/v4"
)

type PostDeleter interface {
	DeletePost(ctx context.Context, id string) error
}

type DeletePostHandler struct {
	postService PostDeleter
	log         ports.Logger
}

func NewDeletePostHandler(postService PostDeleter, log ports.Logger) *DeletePostHandler {
	return &DeletePostHandler{
		postService: postService,
		log:         log,
	}
}

func (h *DeletePostHandler) DeletePost(c echo.Context) error {
	id := c.Param("id")
	h.log.Debug("Received DeletePost request", slog.String("id", id))

	if err := h.postService.DeletePost(c.Request().Context(), id); err != nil {
		h.log.Debug("Error deleting post", slog.String("id", id), slog.String("error", err.Error()))
		return toHTTPError(err)
	}

	h.log.Debug("Successfully deleted post", slog.String("id", id))
	return c.NoContent(http.StatusNoContent)
}
