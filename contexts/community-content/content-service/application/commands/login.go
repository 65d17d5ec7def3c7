package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	application "quill/contexts/community-content/content-service/application"
	"quill/contexts/community-content/content-service/domain/entities"
	domainerrors "quill/contexts/community-content/content-service/domain/errors"
	"quill/contexts/community-content/content-service/ports"
)

type LoginCommand struct {
	Email    string `json:"email" validate:"required,min=5,max=100,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Account entities.Account
	Token   string
}

type LoginUseCase struct {
	Accounts  ports.AccountRepository
	Passwords ports.PasswordHasher
	Tokens    ports.TokenIssuer
	Validator ports.Validator
	Logger    *slog.Logger
}

// Execute answers unknown email and wrong password with the same error.
func (u LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (LoginResult, error) {
	logger := application.ResolveLogger(u.Logger)
	cmd.Email = strings.ToLower(strings.TrimSpace(cmd.Email))
	cmd.Password = strings.TrimSpace(cmd.Password)
	if err := validatePayload(u.Validator, cmd); err != nil {
		return LoginResult{}, err
	}

	account, err := u.Accounts.GetAccountByEmail(ctx, cmd.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrAccountNotFound) {
			return LoginResult{}, domainerrors.ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	ok, err := u.Passwords.VerifyPassword(ctx, cmd.Password, account.PasswordHash)
	if err != nil {
		return LoginResult{}, err
	}
	if !ok {
		logger.Info("login rejected",
			"event", "content_login_rejected",
			"module", "community-content/content-service",
			"layer", "application",
			"account_id", account.AccountID,
		)
		return LoginResult{}, domainerrors.ErrInvalidCredentials
	}

	token, err := u.Tokens.IssueToken(ctx, account.AccountID, account.Privileged)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Account: account, Token: token}, nil
}
