package entities

import "time"

type Comment struct {
	CommentID string
	PostID    string
	Text      string
	OwnerID   string
	// OwnerName is captured at creation and not refreshed on rename.
	OwnerName string
	CreatedAt time.Time
	UpdatedAt time.Time
}
