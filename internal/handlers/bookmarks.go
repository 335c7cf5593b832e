package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ethraa/internal/query"
)

type bookmarkRequest struct {
	Post string `json:"post" binding:"required"`
}

func (h HandlerSet) ListBookmarks(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}

	page, err := h.bookmarks.ListAll(c.Request.Context(), user, listParams(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	respondList(c, query.MapPage(page, toBookmarkResponse))
}

func (h HandlerSet) ListMyBookmarks(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}

	page, err := h.bookmarks.ListMine(c.Request.Context(), user, listParams(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	respondList(c, query.MapPage(page, toBookmarkResponse))
}

func (h HandlerSet) ToggleBookmark(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}
	var req bookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalid(c, err)
		return
	}

	saved, err := h.bookmarks.Toggle(c.Request.Context(), user, req.Post)
	if err != nil {
		h.fail(c, err)
		return
	}

	status := http.StatusOK
	if saved {
		status = http.StatusCreated
	}
	respond(c, status, gin.H{"bookmarked": saved, "post": req.Post})
}

func (h HandlerSet) DeleteBookmark(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}

	if err := h.bookmarks.Delete(c.Request.Context(), user, c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h HandlerSet) DeleteAllBookmarks(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}

	deleted, err := h.bookmarks.DeleteAll(c.Request.Context(), user)
	if err != nil {
		h.fail(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"deleted": deleted})
}
