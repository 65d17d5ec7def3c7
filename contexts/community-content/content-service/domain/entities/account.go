package entities

import "time"

type Account struct {
	AccountID    string
	Username     string
	Email        string
	PasswordHash string
	ProfilePhoto ImageRef
	Bio          string
	Privileged   bool
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AccountPatch lists the fields a partial update may touch. Nil fields are left as stored.
type AccountPatch struct {
	Username     *string
	PasswordHash *string
	Bio          *string
	ProfilePhoto *ImageRef
	Privileged   *bool
	UpdatedAt    time.Time
}

func (p AccountPatch) Apply(account Account) Account {
	if p.Username != nil {
		account.Username = *p.Username
	}
	if p.PasswordHash != nil {
		account.PasswordHash = *p.PasswordHash
	}
	if p.Bio != nil {
		account.Bio = *p.Bio
	}
	if p.ProfilePhoto != nil {
		account.ProfilePhoto = *p.ProfilePhoto
	}
	if p.Privileged != nil {
		account.Privileged = *p.Privileged
	}
	if !p.UpdatedAt.IsZero() {
		account.UpdatedAt = p.UpdatedAt
	}
	return account
}
