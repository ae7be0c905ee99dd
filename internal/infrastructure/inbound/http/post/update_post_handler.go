package post_http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"blog-post-service/internal/custom_errors"
	model "blog-post-service/internal/domain/models"
	ports "blog-post-service/internal/domain/ports/output"

	"github.com/labstack/echo/v4"
)

type PostUpdater interface {
	UpdatePost(ctx context.Context, id string, post *model.UpdatePostDTO) error
}

type UpdatePostHandler struct {
	postService PostUpdater
	log         ports.Logger
}

func NewUpdatePostHandler(postService PostUpdater, log ports.Logger) *UpdatePostHandler {
	return &UpdatePostHandler{
		postService: postService,
		log:         log,
	}
}

func (h *UpdatePostHandler) UpdatePost(c echo.Context) error {
	id := c.Param("id")

	var req model.UpdatePostDTO
	if err := c.Bind(&req); err != nil {
		h.log.Debug("Failed to bind UpdatePost request", slog.String("id", id), slog.String("error", err.Error()))
		return err
	}

	h.log.Debug("Received UpdatePost request",
		slog.String("id", id),
		slog.Bool("has_title_update", req.Title != nil),
		slog.Bool("has_content_update", req.Content != nil),
		slog.Bool("has_author_update", req.Author != nil))

	if req.ID != nil && *req.ID != id {
		h.log.Debug("Body id does not match path id", slog.String("id", id), slog.String("body_id", *req.ID))
		return toHTTPError(fmt.Errorf("%w: id in body does not match id in path", custom_errors.ErrInvalidInput))
	}

	if err := h.postService.UpdatePost(c.Request().Context(), id, &req); err != nil {
		h.log.Debug("Error updating post", slog.String("id", id), slog.String("error", err.Error()))
		return toHTTPError(err)
	}

	h.log.Debug("Successfully updated post", slog.String("id", id))
	return c.NoContent(http.StatusNoContent)
}
