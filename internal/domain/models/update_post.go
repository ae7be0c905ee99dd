package model

type AuthorUpdate struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
}

// UpdatePostDTO carries a partial update. Nil fields are left unchanged.
type UpdatePostDTO struct {
	ID      *string       `json:"id,omitempty"`
	Title   *string       `json:"title,omitempty"`
	Content *string       `json:"content,omitempty"`
	Author  *AuthorUpdate `json:"author,omitempty"`
}

func (u *UpdatePostDTO) IsEmpty() bool {
	if u == nil {
		return true
	}
	if u.Title != nil || u.Content != nil {
		return false
	}
	return u.Author == nil || (u.Author.FirstName == nil && u.Author.LastName == nil)
}

// Apply copies the present fields of the update onto p.
func (u *UpdatePostDTO) Apply(p *Post) {
	if u == nil || p == nil {
		return
	}
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Content != nil {
		p.Content = *u.Content
	}
	if u.Author != nil {
		if u.Author.FirstName != nil {
			p.Author.FirstName = *u.Author.FirstName
		}
		if u.Author.LastName != nil {
			p.Author.LastName = *u.Author.LastName
		}
	}
}
