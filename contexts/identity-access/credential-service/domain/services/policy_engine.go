package services

import (
	"quill/contexts/identity-access/credential-service/domain/entities"
	domainerrors "quill/contexts/identity-access/credential-service/domain/errors"
	identityv1 "quill/contracts/identity/v1"
)

// PolicyEngine evaluates a route policy for an already authenticated principal.
// targetAccountID is the path parameter value for owner-based policies.
func PolicyEngine(policy entities.Policy, principal identityv1.Principal, targetAccountID string) error {
	switch policy.Kind {
	case entities.PolicyAnonymous:
		return nil
	case entities.PolicyAnyAuthenticated:
		if !principal.IsAuthenticated() {
			return domainerrors.ErrMissingToken
		}
		return nil
	case entities.PolicyAdminOnly:
		if !principal.IsAdmin() {
			return domainerrors.ErrForbiddenAdminOnly
		}
		return nil
	case entities.PolicyOwnerOnly:
		if !principal.IsOwner(targetAccountID) {
			return domainerrors.ErrForbiddenOwnerOnly
		}
		return nil
	case entities.PolicyOwnerOrAdmin:
		if !principal.IsOwnerOrAdmin(targetAccountID) {
			return domainerrors.ErrForbiddenOwnerOrAdmin
		}
		return nil
	default:
		return domainerrors.ErrUnknownPolicy
	}
}
