package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ethraa/internal/models"
	"ethraa/internal/query"
	"ethraa/internal/service"
)

type createPostRequest struct {
	Quote    string `json:"quote" binding:"required,min=1"`
	QuoteFor string `json:"quoteFor" binding:"omitempty,min=3"`
	IsPublic *bool  `json:"isPublic"`
}

type updatePostRequest struct {
	Quote    *string `json:"quote" binding:"omitempty,min=1"`
	QuoteFor *string `json:"quoteFor"`
	IsPublic *bool   `json:"isPublic"`
}

func (h HandlerSet) TopPosts(c *gin.Context) {
	posts, err := h.stats.TopPosts(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	respond(c, http.StatusOK, mapSlice(posts, toPostResponse))
}

func (h HandlerSet) ListPosts(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}

	page, err := h.posts.ListAll(c.Request.Context(), user, listParams(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	respondList(c, query.MapPage(page, toPostResponse))
}

func (h HandlerSet) ListPostsForUsers(c *gin.Context) {
	page, err := h.posts.ListForUsers(c.Request.Context(), listParams(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	respondList(c, query.MapPage(page, toPostResponse))
}

func (h HandlerSet) ListFollowingPosts(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}

	page, err := h.posts.ListFollowing(c.Request.Context(), user, listParams(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	respondList(c, query.MapPage(page, toPostResponse))
}

func (h HandlerSet) ListPostsForUser(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}

	page, err := h.posts.ListForUser(c.Request.Context(), user, c.Param("username"), listParams(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	respondList(c, query.MapPage(page, toPostResponse))
}

func (h HandlerSet) GetPost(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}

	post, err := h.posts.Get(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	respond(c, http.StatusOK, toPostResponse(post))
}

func (h HandlerSet) CreatePost(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalid(c, err)
		return
	}

	post, err := h.posts.Create(c.Request.Context(), user, service.PostInput{
		Quote:    req.Quote,
		QuoteFor: req.QuoteFor,
		IsPublic: req.IsPublic,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	respond(c, http.StatusCreated, toPostResponse(post))
}

func (h HandlerSet) UpdatePost(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}
	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalid(c, err)
		return
	}

	post, err := h.posts.Update(c.Request.Context(), user, c.Param("id"), models.PostUpdate{
		Quote:    req.Quote,
		QuoteFor: req.QuoteFor,
		IsPublic: req.IsPublic,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	respond(c, http.StatusOK, toPostResponse(post))
}

func (h HandlerSet) DeletePost(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}

	if err := h.posts.Delete(c.Request.Context(), user, c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h HandlerSet) DeleteAllPosts(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}

	deleted, err := h.posts.DeleteAll(c.Request.Context(), user)
	if err != nil {
		h.fail(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"deleted": deleted})
}

func (h HandlerSet) LikePost(c *gin.Context) {
	h.react(c, models.ReactionLike)
}

func (h HandlerSet) DislikePost(c *gin.Context) {
	h.react(c, models.ReactionDislike)
}

func (h HandlerSet) react(c *gin.Context, kind models.ReactionKind) {
	user, ok := h.actor(c)
	if !ok {
		return
	}

	post, err := h.posts.React(c.Request.Context(), user, c.Param("id"), kind)
	if err != nil {
		h.fail(c, err)
		return
	}

	respond(c, http.StatusOK, toPostResponse(post))
}
