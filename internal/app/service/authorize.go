package service

import "qna_board/internal/domain/model"

// isOwner compares a resource's recorded creator to the acting user.
// Identifiers are opaque strings everywhere in this codebase, so equality is
// the whole check.
func isOwner(resourceOwnerID string, actor *model.User) bool {
	return actor != nil && resourceOwnerID != "" && resourceOwnerID == actor.ID
}

// canDelete implements the owner-or-admin rule used by the delete paths.
// Update paths deliberately stay owner-only; the asymmetry matches the
// product's existing contract.
func canDelete(resourceOwnerID string, actor *model.User) bool {
	return isOwner(resourceOwnerID, actor) || (actor != nil && actor.IsAdmin)
}
