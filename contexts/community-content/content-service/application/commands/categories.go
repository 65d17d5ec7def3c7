package commands

import (
	"context"
	"log/slog"
	"strings"

	application "quill/contexts/community-content/content-service/application"
	"quill/contexts/community-content/content-service/domain/entities"
	"quill/contexts/community-content/content-service/ports"
	identityv1 "quill/contracts/identity/v1"
)

type CreateCategoryCommand struct {
	Actor identityv1.Principal `json:"-" validate:"-"`
	Title string               `json:"title" validate:"required"`
}

type CreateCategoryUseCase struct {
	Categories  ports.CategoryRepository
	Validator   ports.Validator
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u CreateCategoryUseCase) Execute(ctx context.Context, cmd CreateCategoryCommand) (entities.Category, error) {
	cmd.Title = strings.TrimSpace(cmd.Title)
	if err := validatePayload(u.Validator, cmd); err != nil {
		return entities.Category{}, err
	}
	categoryID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Category{}, err
	}
	category := entities.Category{
		CategoryID: categoryID,
		Title:      cmd.Title,
		OwnerID:    cmd.Actor.AccountID,
		CreatedAt:  resolveNow(u.Clock),
	}
	if err := u.Categories.CreateCategory(ctx, category); err != nil {
		return entities.Category{}, err
	}
	application.ResolveLogger(u.Logger).Info("category created",
		"event", "content_category_created",
		"module", "community-content/content-service",
		"layer", "application",
		"category_id", categoryID,
	)
	return category, nil
}

type DeleteCategoryCommand struct {
	CategoryID string
}

// DeleteCategoryUseCase does not touch posts; they keep the category title.
type DeleteCategoryUseCase struct {
	Categories ports.CategoryRepository
	Logger     *slog.Logger
}

func (u DeleteCategoryUseCase) Execute(ctx context.Context, cmd DeleteCategoryCommand) error {
	if err := u.Categories.DeleteCategory(ctx, cmd.CategoryID); err != nil {
		return err
	}
	application.ResolveLogger(u.Logger).Info("category deleted",
		"event", "content_category_deleted",
		"module", "community-content/content-service",
		"layer", "application",
		"category_id", cmd.CategoryID,
	)
	return nil
}
