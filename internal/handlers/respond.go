package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ethraa/internal/apperr"
	"ethraa/internal/middleware"
	"ethraa/internal/models"
	"ethraa/internal/query"
)

func respond(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"status": "success",
		"data":   data,
	})
}

func respondMessage(c *gin.Context, status int, message string, data any) {
	body := gin.H{
		"status":  "success",
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func respondList[T any](c *gin.Context, page query.Page[T]) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "success",
		"total_records": page.Total,
		"pagination":    page.Pagination,
		"data":          page.Items,
	})
}

// fail logs infrastructure errors and renders err for the client.
func (h HandlerSet) fail(c *gin.Context, err error) {
	if apperr.HTTPStatus(apperr.KindOf(err)) >= http.StatusInternalServerError {
		h.log.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Str("request_id", middleware.RequestIDFrom(c)).
			Msg("request failed")
	}
	_ = c.Error(err)
	middleware.AbortWithError(c, err)
}

func (h HandlerSet) invalid(c *gin.Context, err error) {
	_ = c.Error(err)
	middleware.AbortWithError(c, apperr.Wrap(apperr.KindInvalidInput, apperr.KeyValidation, err))
}

// actor returns the authenticated account. Routes calling it sit behind
// middleware.Auth.
func (h HandlerSet) actor(c *gin.Context) (models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.AbortWithError(c, apperr.New(apperr.KindUnauthorized, apperr.KeyUnauthenticated))
	}
	return user, ok
}

func listParams(c *gin.Context) query.Params {
	return query.ParseParams(c.Request.URL.Query())
}
