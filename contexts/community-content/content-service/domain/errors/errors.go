package errors

import "errors"

var (
	ErrValidationFailed     = errors.New("validation failed")
	ErrInvalidIdentifier    = errors.New("invalid id")
	ErrInvalidPageNumber    = errors.New("pageNumber must be a positive integer")
	ErrAccountNotFound      = errors.New("user not found")
	ErrPostNotFound         = errors.New("post not found")
	ErrCommentNotFound      = errors.New("comment not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrAccountAlreadyExists = errors.New("user already exist")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrImageRequired        = errors.New("no image provided")
	ErrFileRequired         = errors.New("no file provided")
	ErrNotPostOwner         = errors.New("access denied, you are not allowed")
	ErrForbidden            = errors.New("access denied, forbidden")
	ErrNotCommentOwner      = errors.New("access denied, only user himself can edit his comment")
	ErrCommentDeleteDenied  = errors.New("access denied, not allowed")
	ErrUpstreamStoreFailure = errors.New("image store failure")
)

// ValidationError carries the first human-readable message produced by the
// payload validator. It matches ErrValidationFailed under errors.Is.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

func (e ValidationError) Unwrap() error {
	return ErrValidationFailed
}
