package httpadapter

import (
	"time"

	"quill/contexts/community-content/content-service/application/queries"
	"quill/contexts/community-content/content-service/domain/entities"
	httptransport "quill/contexts/community-content/content-service/transport/http"
)

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(time.RFC3339)
}

func mapImage(image entities.ImageRef) httptransport.ImageDTO {
	return httptransport.ImageDTO{URL: image.URL, PublicID: image.ReferenceID}
}

// mapAccount never exposes the password hash.
func mapAccount(account entities.Account) httptransport.AccountDTO {
	return httptransport.AccountDTO{
		ID:           account.AccountID,
		Username:     account.Username,
		Email:        account.Email,
		ProfilePhoto: mapImage(account.ProfilePhoto),
		Bio:          account.Bio,
		IsAdmin:      account.Privileged,
		IsVerified:   account.Verified,
		CreatedAt:    formatTime(account.CreatedAt),
		UpdatedAt:    formatTime(account.UpdatedAt),
	}
}

func mapProfile(profile queries.AccountProfile) httptransport.AccountDTO {
	item := mapAccount(profile.Account)
	item.Posts = mapPosts(profile.Posts)
	return item
}

func mapPost(post entities.Post) httptransport.PostDTO {
	likes := post.Likes
	if likes == nil {
		likes = []string{}
	}
	return httptransport.PostDTO{
		ID:          post.PostID,
		Title:       post.Title,
		Description: post.Description,
		Category:    post.Category,
		User:        post.OwnerID,
		Image:       mapImage(post.Image),
		Likes:       likes,
		CreatedAt:   formatTime(post.CreatedAt),
		UpdatedAt:   formatTime(post.UpdatedAt),
	}
}

func mapPosts(posts []entities.Post) []httptransport.PostDTO {
	items := make([]httptransport.PostDTO, 0, len(posts))
	for _, post := range posts {
		items = append(items, mapPost(post))
	}
	return items
}

func mapComment(comment entities.Comment) httptransport.CommentDTO {
	return httptransport.CommentDTO{
		ID:        comment.CommentID,
		PostID:    comment.PostID,
		Text:      comment.Text,
		User:      comment.OwnerID,
		Username:  comment.OwnerName,
		CreatedAt: formatTime(comment.CreatedAt),
		UpdatedAt: formatTime(comment.UpdatedAt),
	}
}

func mapComments(comments []entities.Comment) []httptransport.CommentDTO {
	items := make([]httptransport.CommentDTO, 0, len(comments))
	for _, comment := range comments {
		items = append(items, mapComment(comment))
	}
	return items
}

func mapCategory(category entities.Category) httptransport.CategoryDTO {
	return httptransport.CategoryDTO{
		ID:        category.CategoryID,
		Title:     category.Title,
		User:      category.OwnerID,
		CreatedAt: formatTime(category.CreatedAt),
	}
}
