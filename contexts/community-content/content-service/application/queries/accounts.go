package queries

import (
	"context"
	"log/slog"

	application "quill/contexts/community-content/content-service/application"
	"quill/contexts/community-content/content-service/domain/entities"
	"quill/contexts/community-content/content-service/ports"
)

// AccountProfile is an account with the posts it owns, newest first.
type AccountProfile struct {
	Account entities.Account
	Posts   []entities.Post
}

type GetAccountProfileUseCase struct {
	Accounts ports.AccountRepository
	Posts    ports.PostRepository
	Logger   *slog.Logger
}

func (u GetAccountProfileUseCase) Execute(ctx context.Context, accountID string) (AccountProfile, error) {
	account, err := u.Accounts.GetAccount(ctx, accountID)
	if err != nil {
		return AccountProfile{}, err
	}
	posts, err := u.Posts.ListPosts(ctx, ports.PostListFilter{OwnerID: accountID, NewestFirst: true})
	if err != nil {
		return AccountProfile{}, err
	}
	return AccountProfile{Account: account, Posts: posts}, nil
}

type ListAccountsUseCase struct {
	Accounts ports.AccountRepository
	Posts    ports.PostRepository
	Logger   *slog.Logger
}

func (u ListAccountsUseCase) Execute(ctx context.Context) ([]AccountProfile, error) {
	logger := application.ResolveLogger(u.Logger)
	accounts, err := u.Accounts.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	posts, err := u.Posts.ListPosts(ctx, ports.PostListFilter{NewestFirst: true})
	if err != nil {
		return nil, err
	}

	byOwner := make(map[string][]entities.Post, len(accounts))
	for _, post := range posts {
		byOwner[post.OwnerID] = append(byOwner[post.OwnerID], post)
	}
	items := make([]AccountProfile, 0, len(accounts))
	for _, account := range accounts {
		items = append(items, AccountProfile{Account: account, Posts: byOwner[account.AccountID]})
	}

	logger.Info("accounts listed",
		"event", "content_accounts_listed",
		"module", "community-content/content-service",
		"layer", "application",
		"items_count", len(items),
	)
	return items, nil
}

type CountAccountsUseCase struct {
	Accounts ports.AccountRepository
}

func (u CountAccountsUseCase) Execute(ctx context.Context) (int64, error) {
	return u.Accounts.CountAccounts(ctx)
}
