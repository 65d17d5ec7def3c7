package commands

import (
	"context"
	"log/slog"
	"strings"

	application "quill/contexts/community-content/content-service/application"
	"quill/contexts/community-content/content-service/domain/entities"
	domainerrors "quill/contexts/community-content/content-service/domain/errors"
	"quill/contexts/community-content/content-service/ports"
	identityv1 "quill/contracts/identity/v1"
)

type CreatePostCommand struct {
	Actor       identityv1.Principal `json:"-" validate:"-"`
	ImagePath   string               `json:"-" validate:"-"`
	Title       string               `json:"title" validate:"required,min=2,max=200"`
	Description string               `json:"description" validate:"required,min=10"`
	Category    string               `json:"category" validate:"required"`
}

type CreatePostUseCase struct {
	Posts       ports.PostRepository
	Images      ports.ImageStore
	Files       ports.StagedFiles
	Validator   ports.Validator
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u CreatePostUseCase) Execute(ctx context.Context, cmd CreatePostCommand) (entities.Post, error) {
	defer removeStaged(u.Files, cmd.ImagePath)
	logger := application.ResolveLogger(u.Logger)

	if cmd.ImagePath == "" {
		return entities.Post{}, domainerrors.ErrImageRequired
	}
	cmd.Title = strings.TrimSpace(cmd.Title)
	cmd.Description = strings.TrimSpace(cmd.Description)
	cmd.Category = strings.TrimSpace(cmd.Category)
	if err := validatePayload(u.Validator, cmd); err != nil {
		return entities.Post{}, err
	}

	postID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Post{}, err
	}

	image, err := u.Images.Upload(ctx, cmd.ImagePath)
	if err != nil {
		logger.Error("post image upload failed",
			"event", "content_post_image_upload_failed",
			"module", "community-content/content-service",
			"layer", "application",
			"account_id", cmd.Actor.AccountID,
			"error", err.Error(),
		)
		return entities.Post{}, upstreamFailure("upload post image", err)
	}

	now := resolveNow(u.Clock)
	post := entities.Post{
		PostID:      postID,
		Title:       cmd.Title,
		Description: cmd.Description,
		Category:    cmd.Category,
		OwnerID:     cmd.Actor.AccountID,
		Image:       image,
		Likes:       []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.Posts.CreatePost(ctx, post); err != nil {
		// The uploaded asset has no owner record now; it is left in the store.
		logger.Error("post record create failed after upload",
			"event", "content_post_create_orphaned_image",
			"module", "community-content/content-service",
			"layer", "application",
			"post_id", postID,
			"reference_id", image.ReferenceID,
			"error", err.Error(),
		)
		return entities.Post{}, err
	}

	logger.Info("post created",
		"event", "content_post_created",
		"module", "community-content/content-service",
		"layer", "application",
		"post_id", postID,
		"account_id", cmd.Actor.AccountID,
	)
	return post, nil
}
