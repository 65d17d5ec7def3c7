package entities

import (
	"slices"
	"time"
)

type Post struct {
	PostID      string
	Title       string
	Description string
	// Category holds the category title, not its id.
	Category  string
	OwnerID   string
	Image     ImageRef
	Likes     []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Post) LikedBy(accountID string) bool {
	return slices.Contains(p.Likes, accountID)
}

type PostPatch struct {
	Title       *string
	Description *string
	Category    *string
	Image       *ImageRef
	UpdatedAt   time.Time
}

func (p PostPatch) Apply(post Post) Post {
	if p.Title != nil {
		post.Title = *p.Title
	}
	if p.Description != nil {
		post.Description = *p.Description
	}
	if p.Category != nil {
		post.Category = *p.Category
	}
	if p.Image != nil {
		post.Image = *p.Image
	}
	if !p.UpdatedAt.IsZero() {
		post.UpdatedAt = p.UpdatedAt
	}
	return post
}
