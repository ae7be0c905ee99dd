package post_http

import (
	"context"
	"log/slog"
	"net/http"

	model "blog-post-service/internal/domain/models"
	ports "blog-post-service/internal/domain/ports/output"

	"github.com/labstack/echo/v4"
)

type PostGetter interface {
	GetPostByID(ctx context.Context, id string) (*model.PostView, error)
}

type GetPostHandler struct {
	postService PostGetter
	log         ports.Logger
}

func NewGetPostHandler(postService PostGetter, log ports.Logger) *GetPostHandler {
	return &GetPostHandler{
		postService: postService,
		log:         log,
	}
}

func (h *GetPostHandler) GetPost(c echo.Context) error {
	id := c.Param("id")
	h.log.Debug("Received GetPost request", slog.String("id", id))

	post, err := h.postService.GetPostByID(c.Request().Context(), id)
	if err != nil {
		h.log.Debug("Error getting post", slog.String("id", id), slog.String("error", err.Error()))
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, post)
}
