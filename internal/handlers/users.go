package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ethraa/internal/models"
	"ethraa/internal/query"
)

type profileRequest struct {
	Name     *trimmed `json:"name" binding:"omitempty,min=3,max=50"`
	Bio      *string  `json:"bio" binding:"omitempty,max=500"`
	Facebook *string  `json:"facebook" binding:"omitempty,max=200"`
	Twitter  *string  `json:"twitter" binding:"omitempty,max=200"`
	Role     *string  `json:"role" binding:"omitempty,oneof=user admin"`
}

func (r profileRequest) update() models.ProfileUpdate {
	update := models.ProfileUpdate{
		Bio:      r.Bio,
		Facebook: r.Facebook,
		Twitter:  r.Twitter,
	}
	if r.Name != nil {
		name := string(*r.Name)
		update.Name = &name
	}
	if r.Role != nil {
		role := models.UserRole(*r.Role)
		update.Role = &role
	}
	return update
}

func (h HandlerSet) ListUsers(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}

	page, err := h.users.List(c.Request.Context(), user, listParams(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	respondList(c, query.MapPage(page, toUserResponse))
}

func (h HandlerSet) TopLikedUsers(c *gin.Context) {
	users, err := h.stats.TopLikedUsers(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	respond(c, http.StatusOK, mapSlice(users, toLikedUserResponse))
}

func (h HandlerSet) SuggestFollowing(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}

	page, err := h.graph.Suggest(c.Request.Context(), user, listParams(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	respondList(c, query.MapPage(page, toUserResponse))
}

func (h HandlerSet) Me(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}

	me, err := h.users.Me(c.Request.Context(), user)
	if err != nil {
		h.fail(c, err)
		return
	}

	respond(c, http.StatusOK, toUserResponse(me))
}

func (h HandlerSet) UpdateMe(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalid(c, err)
		return
	}

	updated, err := h.users.UpdateMe(c.Request.Context(), user, req.update())
	if err != nil {
		h.fail(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "messages.user.update_success", toUserResponse(updated))
}

func (h HandlerSet) DeleteMe(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}

	if err := h.users.DeleteMe(c.Request.Context(), user); err != nil {
		h.fail(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "messages.user.delete_success", nil)
}

type themeRequest struct {
	IsDarkMode *bool `json:"isDarkMode" binding:"required"`
}

func (h HandlerSet) UpdateTheme(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalid(c, err)
		return
	}

	updated, err := h.users.UpdateSettings(c.Request.Context(), user, models.SettingsUpdate{IsDarkMode: req.IsDarkMode})
	if err != nil {
		h.fail(c, err)
		return
	}

	respond(c, http.StatusOK, toUserResponse(updated))
}

type languageRequest struct {
	Language string `json:"language" binding:"required,min=2,max=10"`
}

func (h HandlerSet) UpdateLanguage(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}
	var req languageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalid(c, err)
		return
	}

	updated, err := h.users.UpdateSettings(c.Request.Context(), user, models.SettingsUpdate{Language: &req.Language})
	if err != nil {
		h.fail(c, err)
		return
	}

	respond(c, http.StatusOK, toUserResponse(updated))
}

func (h HandlerSet) Followers(c *gin.Context) {
	page, err := h.users.Followers(c.Request.Context(), c.Param("username"), listParams(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	respondList(c, query.MapPage(page, toUserResponse))
}

func (h HandlerSet) Following(c *gin.Context) {
	page, err := h.users.Following(c.Request.Context(), c.Param("username"), listParams(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	respondList(c, query.MapPage(page, toUserResponse))
}

func (h HandlerSet) Deactivate(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}

	if err := h.users.Deactivate(c.Request.Context(), user); err != nil {
		h.fail(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "messages.user.deactivate", nil)
}

type profileResponse struct {
	userResponse
	IsFollowing bool `json:"isFollowing"`
}

func (h HandlerSet) GetForUsers(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}

	found, err := h.users.GetForUsers(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.fail(c, err)
		return
	}
	following, err := h.graph.IsFollowing(c.Request.Context(), user, found)
	if err != nil {
		h.fail(c, err)
		return
	}

	respond(c, http.StatusOK, profileResponse{userResponse: toUserResponse(found), IsFollowing: following})
}

type followResponse struct {
	Following bool         `json:"following"`
	User      userResponse `json:"user"`
}

func (h HandlerSet) Follow(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}

	result, err := h.graph.Follow(c.Request.Context(), user, c.Param("username"))
	if err != nil {
		h.fail(c, err)
		return
	}

	respond(c, http.StatusOK, followResponse{
		Following: result.Following,
		User:      toUserResponse(result.Target),
	})
}
