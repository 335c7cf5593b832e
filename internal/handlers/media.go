package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ethraa/internal/apperr"
	"ethraa/internal/service"
)

const avatarField = "avatar"

func (h HandlerSet) UploadAvatar(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+1<<20)
	file, header, err := c.Request.FormFile(avatarField)
	if err != nil {
		h.fail(c, apperr.Wrap(apperr.KindInvalidInput, apperr.KeyInvalidImage, err))
		return
	}
	defer file.Close()

	updated, err := h.upload.UploadAvatar(c.Request.Context(), service.UploadInput{
		Actor:       user,
		Username:    c.Param("username"),
		File:        file,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		h.log.Warn().Err(err).Str("user_id", user.ID).Msg("avatar upload rejected")
		h.fail(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "messages.user.update_success", toUserResponse(updated))
}
