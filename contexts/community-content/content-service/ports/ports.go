package ports

import (
	"context"
	"time"

	"quill/contexts/community-content/content-service/domain/entities"
)

// AccountRepository persists accounts. CreateAccount returns
// ErrAccountAlreadyExists when the email is taken.
type AccountRepository interface {
	CreateAccount(ctx context.Context, account entities.Account) error
	GetAccount(ctx context.Context, accountID string) (entities.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (entities.Account, error)
	ListAccounts(ctx context.Context) ([]entities.Account, error)
	CountAccounts(ctx context.Context) (int64, error)
	UpdateAccount(ctx context.Context, accountID string, patch entities.AccountPatch) (entities.Account, error)
	DeleteAccount(ctx context.Context, accountID string) error
}

// PostListFilter selects posts. Zero Limit means no limit. With NewestFirst
// unset, posts come back in store natural (insertion) order.
type PostListFilter struct {
	Category    string
	OwnerID     string
	Skip        int
	Limit       int
	NewestFirst bool
}

// PostRepository persists posts and their liking-account sets.
type PostRepository interface {
	CreatePost(ctx context.Context, post entities.Post) error
	GetPost(ctx context.Context, postID string) (entities.Post, error)
	ListPosts(ctx context.Context, filter PostListFilter) ([]entities.Post, error)
	CountPosts(ctx context.Context) (int64, error)
	UpdatePost(ctx context.Context, postID string, patch entities.PostPatch) (entities.Post, error)
	// AddLike is idempotent: an account appears in the set at most once.
	AddLike(ctx context.Context, postID string, accountID string) (entities.Post, error)
	RemoveLike(ctx context.Context, postID string, accountID string) (entities.Post, error)
	DeletePost(ctx context.Context, postID string) error
	DeletePostsByOwner(ctx context.Context, ownerID string) (int64, error)
}

// CommentListFilter selects comments; an empty PostID lists all.
type CommentListFilter struct {
	PostID string
}

type CommentRepository interface {
	CreateComment(ctx context.Context, comment entities.Comment) error
	GetComment(ctx context.Context, commentID string) (entities.Comment, error)
	ListComments(ctx context.Context, filter CommentListFilter) ([]entities.Comment, error)
	UpdateCommentText(ctx context.Context, commentID string, text string, updatedAt time.Time) (entities.Comment, error)
	DeleteComment(ctx context.Context, commentID string) error
	DeleteCommentsByPost(ctx context.Context, postID string) (int64, error)
	DeleteCommentsByOwner(ctx context.Context, ownerID string) (int64, error)
}

type CategoryRepository interface {
	CreateCategory(ctx context.Context, category entities.Category) error
	ListCategories(ctx context.Context) ([]entities.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error
}

// ImageStore talks to remote object storage. Deleting an unknown reference
// succeeds so a partially failed cascade can be re-run.
type ImageStore interface {
	Upload(ctx context.Context, localPath string) (entities.ImageRef, error)
	Delete(ctx context.Context, referenceID string) error
	DeleteMany(ctx context.Context, referenceIDs []string) error
}

// StagedFiles releases locally staged uploads once a request is done with them.
type StagedFiles interface {
	Remove(path string) error
}

// PasswordHasher and TokenIssuer are served by the credential service.
type PasswordHasher interface {
	HashPassword(ctx context.Context, password string) (string, error)
	VerifyPassword(ctx context.Context, password string, hash string) (bool, error)
}

type TokenIssuer interface {
	IssueToken(ctx context.Context, accountID string, privileged bool) (string, error)
}

// Validator checks struct tags and returns nil or an error whose message is
// the first human-readable failure.
type Validator interface {
	Validate(payload any) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// CascadeObserver is told about every tolerated step failure.
type CascadeObserver interface {
	StepFailed(operation string, step string)
}
