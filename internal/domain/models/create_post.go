package model

type CreatePostDTO struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
	Author  Author `json:"author"`
}
