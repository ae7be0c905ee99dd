package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	model "blog-post-service/internal/domain/models"
)

func ptr(s string) *string { return &s }

func TestAuthor_FullName(t *testing.T) {
	tests := []struct {
		name   string
		author model.Author
		want   string
	}{
		{name: "both names", author: model.Author{FirstName: "A", LastName: "B"}, want: "A B"},
		{name: "missing last name", author: model.Author{FirstName: "A"}, want: "A"},
		{name: "empty", author: model.Author{}, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.author.FullName())
		})
	}
}

func TestNewPostView(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	post := &model.Post{
		ID:        "abc",
		Title:     "T",
		Content:   "C",
		Author:    model.Author{FirstName: "A", LastName: "B"},
		CreatedAt: created,
	}

	view := model.NewPostView(post)

	assert.Equal(t, &model.PostView{ID: "abc", Title: "T", Content: "C", Author: "A B", Created: created}, view)
	assert.Nil(t, model.NewPostView(nil))
}

func TestUpdatePostDTO_Apply(t *testing.T) {
	post := &model.Post{
		ID:      "abc",
		Title:   "old title",
		Content: "old content",
		Author:  model.Author{FirstName: "Old", LastName: "Name"},
	}

	update := &model.UpdatePostDTO{
		Title:  ptr("new title"),
		Author: &model.AuthorUpdate{LastName: ptr("Changed")},
	}
	update.Apply(post)

	assert.Equal(t, "new title", post.Title)
	assert.Equal(t, "old content", post.Content)
	assert.Equal(t, "Old", post.Author.FirstName)
	assert.Equal(t, "Changed", post.Author.LastName)
	assert.Equal(t, "abc", post.ID)
}

func TestUpdatePostDTO_IsEmpty(t *testing.T) {
	var nilUpdate *model.UpdatePostDTO
	assert.True(t, nilUpdate.IsEmpty())
	assert.True(t, (&model.UpdatePostDTO{}).IsEmpty())
	assert.True(t, (&model.UpdatePostDTO{ID: ptr("abc")}).IsEmpty())
	assert.True(t, (&model.UpdatePostDTO{Author: &model.AuthorUpdate{}}).IsEmpty())
	assert.False(t, (&model.UpdatePostDTO{Content: ptr("c")}).IsEmpty())
	assert.False(t, (&model.UpdatePostDTO{Author: &model.AuthorUpdate{FirstName: ptr("f")}}).IsEmpty())
}
