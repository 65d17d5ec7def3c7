package v1

// Principal is the caller identity decoded from a bearer token.
// It is shared by the request guard and every module that makes
// data-dependent ownership decisions, so both sides use one definition
// of "owner" and "admin".
type Principal struct {
	AccountID  string `json:"id"`
	Privileged bool   `json:"isAdmin"`
}

// Anonymous is the zero principal carried by unauthenticated requests.
var Anonymous = Principal{}

func (p Principal) IsAuthenticated() bool {
	return p.AccountID != ""
}

// IsOwner reports whether the principal is the account identified by ownerID.
func (p Principal) IsOwner(ownerID string) bool {
	return p.AccountID != "" && p.AccountID == ownerID
}

// IsAdmin reports whether the principal carries the privileged flag.
func (p Principal) IsAdmin() bool {
	return p.IsAuthenticated() && p.Privileged
}

// IsOwnerOrAdmin is the owner-or-admin predicate.
func (p Principal) IsOwnerOrAdmin(ownerID string) bool {
	return p.IsOwner(ownerID) || p.IsAdmin()
}
