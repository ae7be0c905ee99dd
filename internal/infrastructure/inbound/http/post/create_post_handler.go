package post_http

import (
	"context"
	"log/slog"
	"net/http"

	model "blog-post-service/internal/domain/models"
	ports "blog-post-service/internal/domain/ports/output"

	"github.com/labstack/echo/v4"
)

type PostCreator interface {
	CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.PostView, error)
}

type CreatePostHandler struct {
	postService PostCreator
	log         ports.Logger
}

func NewCreatePostHandler(postService PostCreator, log ports.Logger) *CreatePostHandler {
	return &CreatePostHandler{
		postService: postService,
		log:         log,
	}
}

func (h *CreatePostHandler) CreatePost(c echo.Context) error {
	var req model.CreatePostDTO
	if err := c.Bind(&req); err != nil {
		h.log.Debug("Failed to bind CreatePost request", slog.String("error", err.Error()))
		return err
	}

	h.log.Debug("Received CreatePost request", slog.String("title", req.Title))

	post, err := h.postService.CreatePost(c.Request().Context(), &req)
	if err != nil {
		h.log.Debug("Error creating post", slog.String("error", err.Error()))
		return toHTTPError(err)
	}

	h.log.Debug("Successfully created post", slog.String("id", post.ID))
	return c.JSON(http.StatusCreated, post)
}
