package commands

import (
	"context"
	"log/slog"

	application "quill/contexts/community-content/content-service/application"
	"quill/contexts/community-content/content-service/application/workflows"
	"quill/contexts/community-content/content-service/domain/entities"
	"quill/contexts/community-content/content-service/ports"
)

type DeleteAccountCommand struct {
	AccountID string
}

type DeleteAccountUseCase struct {
	Accounts ports.AccountRepository
	Posts    ports.PostRepository
	Comments ports.CommentRepository
	Images   ports.ImageStore
	Observer ports.CascadeObserver
	Logger   *slog.Logger
}

// Execute removes the account with everything it owns. Comments written by
// other accounts on the removed posts are left in place.
func (u DeleteAccountUseCase) Execute(ctx context.Context, cmd DeleteAccountCommand) error {
	var (
		account entities.Account
		posts   []entities.Post
	)

	runner := workflows.Runner{Operation: "delete_account", Observer: u.Observer, Logger: u.Logger}
	_, err := runner.Run(ctx,
		workflows.Then(workflows.Step{Name: "load_account", Run: func(ctx context.Context) error {
			var err error
			account, err = u.Accounts.GetAccount(ctx, cmd.AccountID)
			return err
		}}),
		workflows.Then(workflows.Step{Name: "load_posts", Run: func(ctx context.Context) error {
			var err error
			posts, err = u.Posts.ListPosts(ctx, ports.PostListFilter{OwnerID: account.AccountID})
			return err
		}}),
		workflows.Then(workflows.Step{Name: "release_post_images", BestEffort: true, Run: func(ctx context.Context) error {
			referenceIDs := make([]string, 0, len(posts))
			for _, post := range posts {
				if !post.Image.IsPlaceholder() {
					referenceIDs = append(referenceIDs, post.Image.ReferenceID)
				}
			}
			if len(referenceIDs) == 0 {
				return nil
			}
			return u.Images.DeleteMany(ctx, referenceIDs)
		}}),
		workflows.Then(workflows.Step{Name: "release_profile_photo", BestEffort: true, Run: func(ctx context.Context) error {
			if account.ProfilePhoto.IsPlaceholder() {
				return nil
			}
			return u.Images.Delete(ctx, account.ProfilePhoto.ReferenceID)
		}}),
		workflows.Then(workflows.Step{Name: "delete_posts", BestEffort: true, Run: func(ctx context.Context) error {
			_, err := u.Posts.DeletePostsByOwner(ctx, account.AccountID)
			return err
		}}),
		workflows.Then(workflows.Step{Name: "delete_comments", BestEffort: true, Run: func(ctx context.Context) error {
			_, err := u.Comments.DeleteCommentsByOwner(ctx, account.AccountID)
			return err
		}}),
		workflows.Then(workflows.Step{Name: "delete_account", Run: func(ctx context.Context) error {
			return u.Accounts.DeleteAccount(ctx, account.AccountID)
		}}),
	)
	if err != nil {
		return err
	}

	application.ResolveLogger(u.Logger).Info("account deleted",
		"event", "content_account_deleted",
		"module", "community-content/content-service",
		"layer", "application",
		"account_id", account.AccountID,
		"posts_count", len(posts),
	)
	return nil
}
