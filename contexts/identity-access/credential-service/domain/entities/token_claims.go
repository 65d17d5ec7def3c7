package entities

import "time"

// TokenClaims is the payload carried by an issued bearer token.
// ExpiresAt is nil when tokens are issued without expiry.
type TokenClaims struct {
	AccountID  string
	Privileged bool
	IssuedAt   time.Time
	ExpiresAt  *time.Time
}
