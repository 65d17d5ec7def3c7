package commands

import (
	"context"
	"log/slog"
	"strings"

	application "quill/contexts/community-content/content-service/application"
	"quill/contexts/community-content/content-service/domain/entities"
	"quill/contexts/community-content/content-service/domain/services"
	"quill/contexts/community-content/content-service/ports"
	identityv1 "quill/contracts/identity/v1"
)

type CreateCommentCommand struct {
	Actor  identityv1.Principal `json:"-" validate:"-"`
	PostID string               `json:"postId" validate:"required"`
	Text   string               `json:"text" validate:"required,min=2"`
}

type CreateCommentUseCase struct {
	Accounts    ports.AccountRepository
	Posts       ports.PostRepository
	Comments    ports.CommentRepository
	Validator   ports.Validator
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// Execute copies the author's current username onto the comment.
func (u CreateCommentUseCase) Execute(ctx context.Context, cmd CreateCommentCommand) (entities.Comment, error) {
	cmd.PostID = strings.TrimSpace(cmd.PostID)
	cmd.Text = strings.TrimSpace(cmd.Text)
	if err := validatePayload(u.Validator, cmd); err != nil {
		return entities.Comment{}, err
	}

	if _, err := u.Posts.GetPost(ctx, cmd.PostID); err != nil {
		return entities.Comment{}, err
	}
	author, err := u.Accounts.GetAccount(ctx, cmd.Actor.AccountID)
	if err != nil {
		return entities.Comment{}, err
	}
	commentID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Comment{}, err
	}

	now := resolveNow(u.Clock)
	comment := entities.Comment{
		CommentID: commentID,
		PostID:    cmd.PostID,
		Text:      cmd.Text,
		OwnerID:   author.AccountID,
		OwnerName: author.Username,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.Comments.CreateComment(ctx, comment); err != nil {
		return entities.Comment{}, err
	}

	application.ResolveLogger(u.Logger).Info("comment created",
		"event", "content_comment_created",
		"module", "community-content/content-service",
		"layer", "application",
		"comment_id", commentID,
		"post_id", cmd.PostID,
	)
	return comment, nil
}

type UpdateCommentCommand struct {
	Actor     identityv1.Principal `json:"-" validate:"-"`
	CommentID string               `json:"-" validate:"-"`
	Text      string               `json:"text" validate:"required,min=2"`
}

type UpdateCommentUseCase struct {
	Comments  ports.CommentRepository
	Validator ports.Validator
	Clock     ports.Clock
	Logger    *slog.Logger
}

func (u UpdateCommentUseCase) Execute(ctx context.Context, cmd UpdateCommentCommand) (entities.Comment, error) {
	cmd.Text = strings.TrimSpace(cmd.Text)
	if err := validatePayload(u.Validator, cmd); err != nil {
		return entities.Comment{}, err
	}

	comment, err := u.Comments.GetComment(ctx, cmd.CommentID)
	if err != nil {
		return entities.Comment{}, err
	}
	if err := services.CanEditComment(cmd.Actor, comment); err != nil {
		return entities.Comment{}, err
	}

	updated, err := u.Comments.UpdateCommentText(ctx, cmd.CommentID, cmd.Text, resolveNow(u.Clock))
	if err != nil {
		return entities.Comment{}, err
	}
	application.ResolveLogger(u.Logger).Info("comment updated",
		"event", "content_comment_updated",
		"module", "community-content/content-service",
		"layer", "application",
		"comment_id", cmd.CommentID,
	)
	return updated, nil
}

type DeleteCommentCommand struct {
	Actor     identityv1.Principal
	CommentID string
}

type DeleteCommentUseCase struct {
	Comments ports.CommentRepository
	Logger   *slog.Logger
}

func (u DeleteCommentUseCase) Execute(ctx context.Context, cmd DeleteCommentCommand) error {
	comment, err := u.Comments.GetComment(ctx, cmd.CommentID)
	if err != nil {
		return err
	}
	if err := services.CanDeleteComment(cmd.Actor, comment); err != nil {
		return err
	}
	if err := u.Comments.DeleteComment(ctx, cmd.CommentID); err != nil {
		return err
	}
	application.ResolveLogger(u.Logger).Info("comment deleted",
		"event", "content_comment_deleted",
		"module", "community-content/content-service",
		"layer", "application",
		"comment_id", cmd.CommentID,
		"actor_id", cmd.Actor.AccountID,
	)
	return nil
}
