package post_http

import (
	post_service "blog-post-service/internal/domain/ports/input/post"
	ports "blog-post-service/internal/domain/ports/output"

	"github.com/labstack/echo/v4"
)

type PostHTTPService struct {
	createPostHandler *CreatePostHandler
	getPostHandler    *GetPostHandler
	listPostsHandler  *ListPostsHandler
	updatePostHandler *UpdatePostHandler
	deletePostHandler *DeletePostHandler
}

func NewPostHTTPService(postService post_service.Service, log ports.Logger) *PostHTTPService {
	return &PostHTTPService{
		createPostHandler: NewCreatePostHandler(postService, log),
		getPostHandler:    NewGetPostHandler(postService, log),
		listPostsHandler:  NewListPostsHandler(postService, log),
		updatePostHandler: NewUpdatePostHandler(postService, log),
		deletePostHandler: NewDeletePostHandler(postService, log),
	}
}

func (s *PostHTTPService) Register(g *echo.Group) {
	g.GET("", s.listPostsHandler.ListPosts)
	g.POST("", s.createPostHandler.CreatePost)
	g.GET("/:id", s.getPostHandler.GetPost)
	g.PUT("/:id", s.updatePostHandler.UpdatePost)
	g.DELETE("/:id", s.deletePostHandler.DeletePost)
}
