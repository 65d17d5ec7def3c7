package commands

import (
	"context"
	"log/slog"

	application "quill/contexts/community-content/content-service/application"
	"quill/contexts/community-content/content-service/domain/entities"
	"quill/contexts/community-content/content-service/ports"
	identityv1 "quill/contracts/identity/v1"
)

type ToggleLikeCommand struct {
	Actor  identityv1.Principal
	PostID string
}

type ToggleLikeUseCase struct {
	Posts  ports.PostRepository
	Logger *slog.Logger
}

// Execute reads the post and then adds or removes the caller. Two concurrent
// toggles by the same account can both observe the same state.
func (u ToggleLikeUseCase) Execute(ctx context.Context, cmd ToggleLikeCommand) (entities.Post, error) {
	post, err := u.Posts.GetPost(ctx, cmd.PostID)
	if err != nil {
		return entities.Post{}, err
	}

	liked := post.LikedBy(cmd.Actor.AccountID)
	if liked {
		post, err = u.Posts.RemoveLike(ctx, cmd.PostID, cmd.Actor.AccountID)
	} else {
		post, err = u.Posts.AddLike(ctx, cmd.PostID, cmd.Actor.AccountID)
	}
	if err != nil {
		return entities.Post{}, err
	}

	application.ResolveLogger(u.Logger).Debug("post like toggled",
		"event", "content_post_like_toggled",
		"module", "community-content/content-service",
		"layer", "application",
		"post_id", cmd.PostID,
		"account_id", cmd.Actor.AccountID,
		"liked", !liked,
	)
	return post, nil
}
