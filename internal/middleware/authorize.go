package middleware

import (
	"github.com/gin-gonic/gin"

	"ethraa/internal/apperr"
	"ethraa/internal/models"
)

func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]struct{}, len(roles))
	for _, role := range roles {
		roleSet[role] = struct{}{}
	}

	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			AbortWithError(c, apperr.New(apperr.KindUnauthorized, apperr.KeyUnauthenticated))
			return
		}

		if _, ok := roleSet[user.Role]; !ok {
			AbortWithError(c, apperr.New(apperr.KindForbidden, apperr.KeyPermission))
			return
		}

		c.Next()
	}
}
