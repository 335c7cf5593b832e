package service

import (
	"ethraa/internal/apperr"
	"ethraa/internal/models"
)

func isAdmin(actor models.User) bool {
	return actor.Role == models.UserRoleAdmin
}

func requireRole(actor models.User, roles ...models.UserRole) error {
	for _, role := range roles {
		if actor.Role == role {
			return nil
		}
	}
	return apperr.New(apperr.KindForbidden, apperr.KeyPermission)
}

// ownerOrAdmin allows the owner of a resource or any admin.
func ownerOrAdmin(actor models.User, ownerID, key string) error {
	if isAdmin(actor) || actor.ID == ownerID {
		return nil
	}
	return apperr.New(apperr.KindForbidden, key)
}
