package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h HandlerSet) AdminGetUser(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}

	found, err := h.users.Get(c.Request.Context(), user, c.Param("username"))
	if err != nil {
		h.fail(c, err)
		return
	}

	respond(c, http.StatusOK, toUserResponse(found))
}

func (h HandlerSet) AdminUpdateUser(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalid(c, err)
		return
	}

	updated, err := h.users.Update(c.Request.Context(), user, c.Param("username"), req.update())
	if err != nil {
		h.fail(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "messages.user.update_success", toUserResponse(updated))
}

func (h HandlerSet) AdminDeleteUser(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}

	if err := h.users.Delete(c.Request.Context(), user, c.Param("username")); err != nil {
		h.fail(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "messages.user.delete_success", nil)
}

type setPasswordRequest struct {
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
}

func (h HandlerSet) AdminSetPassword(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}
	var req setPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalid(c, err)
		return
	}

	if err := h.auth.SetPassword(c.Request.Context(), user, c.Param("username"), req.Password); err != nil {
		h.fail(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "messages.user.update_password_success", nil)
}

func (h HandlerSet) AdminDeleteAllUsers(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}

	deleted, err := h.users.DeleteAll(c.Request.Context(), user)
	if err != nil {
		h.fail(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "messages.user.delete_all", gin.H{"deleted": deleted})
}
