package model

import "time"

// PostView is the public representation of a post. Author is flattened to
// the full name.
type PostView struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Author  string    `json:"author"`
	Created time.Time `json:"created"`
}

func NewPostView(p *Post) *PostView {
	if p == nil {
		return nil
	}
	return &PostView{
		ID:      p.ID,
		Title:   p.Title,
		Content: p.Content,
		Author:  p.Author.FullName(),
		Created: p.CreatedAt,
	}
}
