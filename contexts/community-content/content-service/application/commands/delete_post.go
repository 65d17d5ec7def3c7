package commands

import (
	"context"
	"log/slog"

	application "quill/contexts/community-content/content-service/application"
	"quill/contexts/community-content/content-service/application/workflows"
	"quill/contexts/community-content/content-service/domain/services"
	"quill/contexts/community-content/content-service/ports"
	identityv1 "quill/contracts/identity/v1"
)

type DeletePostCommand struct {
	Actor  identityv1.Principal
	PostID string
}

type DeletePostUseCase struct {
	Posts    ports.PostRepository
	Comments ports.CommentRepository
	Images   ports.ImageStore
	Observer ports.CascadeObserver
	Logger   *slog.Logger
}

// Execute releases the image and the post's comments concurrently, then
// deletes the post record. Only the last step has to succeed.
func (u DeletePostUseCase) Execute(ctx context.Context, cmd DeletePostCommand) error {
	post, err := u.Posts.GetPost(ctx, cmd.PostID)
	if err != nil {
		return err
	}
	if err := services.CanDeletePost(cmd.Actor, post); err != nil {
		return err
	}

	runner := workflows.Runner{Operation: "delete_post", Observer: u.Observer, Logger: u.Logger}
	_, err = runner.Run(ctx,
		workflows.Concurrent(
			workflows.Step{Name: "release_image", BestEffort: true, Run: func(ctx context.Context) error {
				if post.Image.IsPlaceholder() {
					return nil
				}
				return u.Images.Delete(ctx, post.Image.ReferenceID)
			}},
			workflows.Step{Name: "delete_comments", BestEffort: true, Run: func(ctx context.Context) error {
				_, err := u.Comments.DeleteCommentsByPost(ctx, post.PostID)
				return err
			}},
		),
		workflows.Then(workflows.Step{Name: "delete_post", Run: func(ctx context.Context) error {
			return u.Posts.DeletePost(ctx, post.PostID)
		}}),
	)
	if err != nil {
		return err
	}

	application.ResolveLogger(u.Logger).Info("post deleted",
		"event", "content_post_deleted",
		"module", "community-content/content-service",
		"layer", "application",
		"post_id", post.PostID,
		"actor_id", cmd.Actor.AccountID,
		"actor_is_owner", cmd.Actor.IsOwner(post.OwnerID),
	)
	return nil
}
