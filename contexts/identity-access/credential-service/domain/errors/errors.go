package errors

import "errors"

var (
	ErrMissingToken           = errors.New("no token provided, access denied")
	ErrInvalidToken           = errors.New("invalid token, access denied")
	ErrForbiddenAdminOnly     = errors.New("not allowed, only admin")
	ErrForbiddenOwnerOnly     = errors.New("not allowed, only user himself")
	ErrForbiddenOwnerOrAdmin  = errors.New("not allowed, only user himself or admin")
	ErrUnknownPolicy          = errors.New("unknown route policy")
	ErrPasswordTooShort       = errors.New("password must be at least 8 characters long")
	ErrInvalidAccountID       = errors.New("invalid account id")
	ErrSigningSecretRequired  = errors.New("token signing secret is required")
	ErrPasswordHashMismatched = errors.New("password does not match hash")
)
