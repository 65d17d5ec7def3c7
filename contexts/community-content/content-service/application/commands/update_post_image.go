package commands

import (
	"context"
	"log/slog"

	application "quill/contexts/community-content/content-service/application"
	"quill/contexts/community-content/content-service/application/workflows"
	"quill/contexts/community-content/content-service/domain/entities"
	domainerrors "quill/contexts/community-content/content-service/domain/errors"
	"quill/contexts/community-content/content-service/domain/services"
	"quill/contexts/community-content/content-service/ports"
	identityv1 "quill/contracts/identity/v1"
)

type UpdatePostImageCommand struct {
	Actor     identityv1.Principal
	PostID    string
	ImagePath string
}

type UpdatePostImageUseCase struct {
	Posts    ports.PostRepository
	Images   ports.ImageStore
	Files    ports.StagedFiles
	Clock    ports.Clock
	Observer ports.CascadeObserver
	Logger   *slog.Logger
}

func (u UpdatePostImageUseCase) Execute(ctx context.Context, cmd UpdatePostImageCommand) (entities.Post, error) {
	defer removeStaged(u.Files, cmd.ImagePath)
	if cmd.ImagePath == "" {
		return entities.Post{}, domainerrors.ErrImageRequired
	}

	post, err := u.Posts.GetPost(ctx, cmd.PostID)
	if err != nil {
		return entities.Post{}, err
	}
	if err := services.CanEditPost(cmd.Actor, post); err != nil {
		return entities.Post{}, err
	}

	var (
		uploaded entities.ImageRef
		updated  entities.Post
	)
	runner := workflows.Runner{Operation: "update_post_image", Observer: u.Observer, Logger: u.Logger}
	_, err = runner.Run(ctx,
		workflows.Then(workflows.Step{Name: "release_previous_image", BestEffort: true, Run: func(ctx context.Context) error {
			if post.Image.IsPlaceholder() {
				return nil
			}
			return u.Images.Delete(ctx, post.Image.ReferenceID)
		}}),
		workflows.Then(workflows.Step{Name: "upload_image", Run: func(ctx context.Context) error {
			ref, err := u.Images.Upload(ctx, cmd.ImagePath)
			if err != nil {
				return upstreamFailure("upload post image", err)
			}
			uploaded = ref
			return nil
		}}),
		workflows.Then(workflows.Step{Name: "persist_reference", Run: func(ctx context.Context) error {
			var err error
			updated, err = u.Posts.UpdatePost(ctx, post.PostID, entities.PostPatch{
				Image:     &uploaded,
				UpdatedAt: resolveNow(u.Clock),
			})
			return err
		}}),
	)
	if err != nil {
		return entities.Post{}, err
	}

	application.ResolveLogger(u.Logger).Info("post image replaced",
		"event", "content_post_image_replaced",
		"module", "community-content/content-service",
		"layer", "application",
		"post_id", post.PostID,
		"reference_id", uploaded.ReferenceID,
	)
	return updated, nil
}
