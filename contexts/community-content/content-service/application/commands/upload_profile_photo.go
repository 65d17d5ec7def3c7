package commands

import (
	"context"
	"log/slog"

	application "quill/contexts/community-content/content-service/application"
	"quill/contexts/community-content/content-service/application/workflows"
	"quill/contexts/community-content/content-service/domain/entities"
	domainerrors "quill/contexts/community-content/content-service/domain/errors"
	"quill/contexts/community-content/content-service/ports"
)

type UploadProfilePhotoCommand struct {
	AccountID string
	ImagePath string
}

type UploadProfilePhotoUseCase struct {
	Accounts ports.AccountRepository
	Images   ports.ImageStore
	Files    ports.StagedFiles
	Clock    ports.Clock
	Observer ports.CascadeObserver
	Logger   *slog.Logger
}

// Execute uploads the new photo before releasing the previous one, and never
// releases the placeholder.
func (u UploadProfilePhotoUseCase) Execute(ctx context.Context, cmd UploadProfilePhotoCommand) (entities.ImageRef, error) {
	defer removeStaged(u.Files, cmd.ImagePath)
	if cmd.ImagePath == "" {
		return entities.ImageRef{}, domainerrors.ErrFileRequired
	}

	var (
		account  entities.Account
		uploaded entities.ImageRef
	)
	runner := workflows.Runner{Operation: "upload_profile_photo", Observer: u.Observer, Logger: u.Logger}
	_, err := runner.Run(ctx,
		workflows.Then(workflows.Step{Name: "load_account", Run: func(ctx context.Context) error {
			var err error
			account, err = u.Accounts.GetAccount(ctx, cmd.AccountID)
			return err
		}}),
		workflows.Then(workflows.Step{Name: "upload_image", Run: func(ctx context.Context) error {
			ref, err := u.Images.Upload(ctx, cmd.ImagePath)
			if err != nil {
				return upstreamFailure("upload profile photo", err)
			}
			uploaded = ref
			return nil
		}}),
		workflows.Then(workflows.Step{Name: "release_previous_photo", BestEffort: true, Run: func(ctx context.Context) error {
			if account.ProfilePhoto.IsPlaceholder() {
				return nil
			}
			return u.Images.Delete(ctx, account.ProfilePhoto.ReferenceID)
		}}),
		workflows.Then(workflows.Step{Name: "persist_reference", Run: func(ctx context.Context) error {
			_, err := u.Accounts.UpdateAccount(ctx, cmd.AccountID, entities.AccountPatch{
				ProfilePhoto: &uploaded,
				UpdatedAt:    resolveNow(u.Clock),
			})
			return err
		}}),
	)
	if err != nil {
		return entities.ImageRef{}, err
	}

	application.ResolveLogger(u.Logger).Info("profile photo replaced",
		"event", "content_profile_photo_replaced",
		"module", "community-content/content-service",
		"layer", "application",
		"account_id", cmd.AccountID,
		"reference_id", uploaded.ReferenceID,
	)
	return uploaded, nil
}
