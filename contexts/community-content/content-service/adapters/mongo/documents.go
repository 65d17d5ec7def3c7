package mongoadapter

import (
	"time"

	"quill/contexts/community-content/content-service/domain/entities"
)

type imageDocument struct {
	URL         string `bson:"url"`
	ReferenceID string `bson:"publicId"`
}

type accountDocument struct {
	ID           string        `bson:"_id"`
	Username     string        `bson:"username"`
	Email        string        `bson:"email"`
	PasswordHash string        `bson:"password"`
	ProfilePhoto imageDocument `bson:"profilePhoto"`
	Bio          string        `bson:"bio"`
	Privileged   bool          `bson:"isAdmin"`
	Verified     bool          `bson:"isAccountVerified"`
	CreatedAt    time.Time     `bson:"createdAt"`
	UpdatedAt    time.Time     `bson:"updatedAt"`
}

func accountDocumentFromEntity(account entities.Account) accountDocument {
	return accountDocument{
		ID:           account.AccountID,
		Username:     account.Username,
		Email:        account.Email,
		PasswordHash: account.PasswordHash,
		ProfilePhoto: imageDocument(account.ProfilePhoto),
		Bio:          account.Bio,
		Privileged:   account.Privileged,
		Verified:     account.Verified,
		CreatedAt:    account.CreatedAt.UTC(),
		UpdatedAt:    account.UpdatedAt.UTC(),
	}
}

func (d accountDocument) toEntity() entities.Account {
	return entities.Account{
		AccountID:    d.ID,
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		ProfilePhoto: entities.ImageRef(d.ProfilePhoto),
		Bio:          d.Bio,
		Privileged:   d.Privileged,
		Verified:     d.Verified,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}

type postDocument struct {
	ID          string        `bson:"_id"`
	Title       string        `bson:"title"`
	Description string        `bson:"description"`
	Category    string        `bson:"category"`
	OwnerID     string        `bson:"user"`
	Image       imageDocument `bson:"image"`
	Likes       []string      `bson:"likes"`
	CreatedAt   time.Time     `bson:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt"`
}

func postDocumentFromEntity(post entities.Post) postDocument {
	likes := post.Likes
	if likes == nil {
		likes = []string{}
	}
	return postDocument{
		ID:          post.PostID,
		Title:       post.Title,
		Description: post.Description,
		Category:    post.Category,
		OwnerID:     post.OwnerID,
		Image:       imageDocument(post.Image),
		Likes:       likes,
		CreatedAt:   post.CreatedAt.UTC(),
		UpdatedAt:   post.UpdatedAt.UTC(),
	}
}

func (d postDocument) toEntity() entities.Post {
	likes := d.Likes
	if likes == nil {
		likes = []string{}
	}
	return entities.Post{
		PostID:      d.ID,
		Title:       d.Title,
		Description: d.Description,
		Category:    d.Category,
		OwnerID:     d.OwnerID,
		Image:       entities.ImageRef(d.Image),
		Likes:       likes,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

type commentDocument struct {
	ID        string    `bson:"_id"`
	PostID    string    `bson:"postId"`
	Text      string    `bson:"text"`
	OwnerID   string    `bson:"user"`
	OwnerName string    `bson:"username"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func (d commentDocument) toEntity() entities.Comment {
	return entities.Comment{
		CommentID: d.ID,
		PostID:    d.PostID,
		Text:      d.Text,
		OwnerID:   d.OwnerID,
		OwnerName: d.OwnerName,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

type categoryDocument struct {
	ID        string    `bson:"_id"`
	Title     string    `bson:"title"`
	OwnerID   string    `bson:"user"`
	CreatedAt time.Time `bson:"createdAt"`
}

func (d categoryDocument) toEntity() entities.Category {
	return entities.Category{
		CategoryID: d.ID,
		Title:      d.Title,
		OwnerID:    d.OwnerID,
		CreatedAt:  d.CreatedAt.UTC(),
	}
}
