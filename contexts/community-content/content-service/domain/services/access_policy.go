package services

import (
	"quill/contexts/community-content/content-service/domain/entities"
	domainerrors "quill/contexts/community-content/content-service/domain/errors"
	identityv1 "quill/contracts/identity/v1"
)

// CanEditPost allows only the author; admins do not bypass edits.
func CanEditPost(actor identityv1.Principal, post entities.Post) error {
	if !actor.IsOwner(post.OwnerID) {
		return domainerrors.ErrNotPostOwner
	}
	return nil
}

func CanDeletePost(actor identityv1.Principal, post entities.Post) error {
	if !actor.IsOwnerOrAdmin(post.OwnerID) {
		return domainerrors.ErrForbidden
	}
	return nil
}

func CanEditComment(actor identityv1.Principal, comment entities.Comment) error {
	if !actor.IsOwner(comment.OwnerID) {
		return domainerrors.ErrNotCommentOwner
	}
	return nil
}

func CanDeleteComment(actor identityv1.Principal, comment entities.Comment) error {
	if !actor.IsOwnerOrAdmin(comment.OwnerID) {
		return domainerrors.ErrCommentDeleteDenied
	}
	return nil
}
