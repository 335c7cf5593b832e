package middleware

import (
	"github.com/gin-gonic/gin"

	"ethraa/internal/apperr"
)

// AbortWithError renders err in the API error envelope and stops the chain.
// Only the message key reaches the client.
func AbortWithError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(apperr.KindOf(err))
	outcome := "fail"
	if status >= 500 {
		outcome = "error"
	}
	c.AbortWithStatusJSON(status, gin.H{
		"status":     outcome,
		"statusCode": status,
		"errors":     apperr.KeyOf(err),
		"path":       c.Request.URL.Path,
	})
}
