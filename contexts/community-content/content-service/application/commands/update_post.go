package commands

import (
	"context"
	"log/slog"

	application "quill/contexts/community-content/content-service/application"
	"quill/contexts/community-content/content-service/domain/entities"
	"quill/contexts/community-content/content-service/domain/services"
	"quill/contexts/community-content/content-service/ports"
	identityv1 "quill/contracts/identity/v1"
)

// UpdatePostCommand replaces text fields only; image and likes have their own commands.
type UpdatePostCommand struct {
	Actor       identityv1.Principal `json:"-" validate:"-"`
	PostID      string               `json:"-" validate:"-"`
	Title       *string              `json:"title" validate:"omitempty,min=2,max=200"`
	Description *string              `json:"description" validate:"omitempty,min=10"`
	Category    *string              `json:"category" validate:"omitempty,min=1"`
}

type UpdatePostUseCase struct {
	Posts     ports.PostRepository
	Validator ports.Validator
	Clock     ports.Clock
	Logger    *slog.Logger
}

func (u UpdatePostUseCase) Execute(ctx context.Context, cmd UpdatePostCommand) (entities.Post, error) {
	cmd.Title = trimmed(cmd.Title)
	cmd.Description = trimmed(cmd.Description)
	cmd.Category = trimmed(cmd.Category)
	if err := validatePayload(u.Validator, cmd); err != nil {
		return entities.Post{}, err
	}

	post, err := u.Posts.GetPost(ctx, cmd.PostID)
	if err != nil {
		return entities.Post{}, err
	}
	if err := services.CanEditPost(cmd.Actor, post); err != nil {
		return entities.Post{}, err
	}

	updated, err := u.Posts.UpdatePost(ctx, cmd.PostID, entities.PostPatch{
		Title:       cmd.Title,
		Description: cmd.Description,
		Category:    cmd.Category,
		UpdatedAt:   resolveNow(u.Clock),
	})
	if err != nil {
		return entities.Post{}, err
	}
	application.ResolveLogger(u.Logger).Info("post updated",
		"event", "content_post_updated",
		"module", "community-content/content-service",
		"layer", "application",
		"post_id", cmd.PostID,
	)
	return updated, nil
}
