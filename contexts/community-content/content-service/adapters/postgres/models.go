package postgresadapter

import (
	"time"

	"quill/contexts/community-content/content-service/domain/entities"
)

type accountModel struct {
	AccountID      string    `gorm:"column:account_id;primaryKey"`
	Username       string    `gorm:"column:username"`
	Email          string    `gorm:"column:email;uniqueIndex:accounts_email_key"`
	PasswordHash   string    `gorm:"column:password_hash"`
	PhotoURL       string    `gorm:"column:photo_url"`
	PhotoReference string    `gorm:"column:photo_reference_id"`
	Bio            string    `gorm:"column:bio"`
	Privileged     bool      `gorm:"column:is_admin"`
	Verified       bool      `gorm:"column:is_verified"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (accountModel) TableName() string {
	return "accounts"
}

func accountModelFromEntity(account entities.Account) accountModel {
	return accountModel{
		AccountID:      account.AccountID,
		Username:       account.Username,
		Email:          account.Email,
		PasswordHash:   account.PasswordHash,
		PhotoURL:       account.ProfilePhoto.URL,
		PhotoReference: account.ProfilePhoto.ReferenceID,
		Bio:            account.Bio,
		Privileged:     account.Privileged,
		Verified:       account.Verified,
		CreatedAt:      account.CreatedAt.UTC(),
		UpdatedAt:      account.UpdatedAt.UTC(),
	}
}

func (m accountModel) toEntity() entities.Account {
	return entities.Account{
		AccountID:    m.AccountID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		ProfilePhoto: entities.ImageRef{URL: m.PhotoURL, ReferenceID: m.PhotoReference},
		Bio:          m.Bio,
		Privileged:   m.Privileged,
		Verified:     m.Verified,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}

type postModel struct {
	PostID         string    `gorm:"column:post_id;primaryKey"`
	Title          string    `gorm:"column:title"`
	Description    string    `gorm:"column:description"`
	Category       string    `gorm:"column:category;index"`
	OwnerID        string    `gorm:"column:owner_id;index"`
	ImageURL       string    `gorm:"column:image_url"`
	ImageReference string    `gorm:"column:image_reference_id"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (postModel) TableName() string {
	return "posts"
}

func postModelFromEntity(post entities.Post) postModel {
	return postModel{
		PostID:         post.PostID,
		Title:          post.Title,
		Description:    post.Description,
		Category:       post.Category,
		OwnerID:        post.OwnerID,
		ImageURL:       post.Image.URL,
		ImageReference: post.Image.ReferenceID,
		CreatedAt:      post.CreatedAt.UTC(),
		UpdatedAt:      post.UpdatedAt.UTC(),
	}
}

func (m postModel) toEntity(likes []string) entities.Post {
	if likes == nil {
		likes = []string{}
	}
	return entities.Post{
		PostID:      m.PostID,
		Title:       m.Title,
		Description: m.Description,
		Category:    m.Category,
		OwnerID:     m.OwnerID,
		Image:       entities.ImageRef{URL: m.ImageURL, ReferenceID: m.ImageReference},
		Likes:       likes,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

// postLikeModel keeps the liking set; the composite key forbids duplicates.
type postLikeModel struct {
	PostID    string    `gorm:"column:post_id;primaryKey"`
	AccountID string    `gorm:"column:account_id;primaryKey"`
	LikedAt   time.Time `gorm:"column:liked_at"`
}

func (postLikeModel) TableName() string {
	return "post_likes"
}

type commentModel struct {
	CommentID string    `gorm:"column:comment_id;primaryKey"`
	PostID    string    `gorm:"column:post_id;index"`
	Text      string    `gorm:"column:text"`
	OwnerID   string    `gorm:"column:owner_id;index"`
	OwnerName string    `gorm:"column:owner_name"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (commentModel) TableName() string {
	return "comments"
}

func commentModelFromEntity(comment entities.Comment) commentModel {
	return commentModel{
		CommentID: comment.CommentID,
		PostID:    comment.PostID,
		Text:      comment.Text,
		OwnerID:   comment.OwnerID,
		OwnerName: comment.OwnerName,
		CreatedAt: comment.CreatedAt.UTC(),
		UpdatedAt: comment.UpdatedAt.UTC(),
	}
}

func (m commentModel) toEntity() entities.Comment {
	return entities.Comment{
		CommentID: m.CommentID,
		PostID:    m.PostID,
		Text:      m.Text,
		OwnerID:   m.OwnerID,
		OwnerName: m.OwnerName,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

type categoryModel struct {
	CategoryID string    `gorm:"column:category_id;primaryKey"`
	Title      string    `gorm:"column:title"`
	OwnerID    string    `gorm:"column:owner_id"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (categoryModel) TableName() string {
	return "categories"
}

func (m categoryModel) toEntity() entities.Category {
	return entities.Category{
		CategoryID: m.CategoryID,
		Title:      m.Title,
		OwnerID:    m.OwnerID,
		CreatedAt:  m.CreatedAt.UTC(),
	}
}
