package handlers

import (
	"time"

	"ethraa/internal/models"
)

type userResponse struct {
	ID              string    `json:"_id"`
	Name            string    `json:"name"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	Avatar          string    `json:"avatar"`
	Bio             string    `json:"bio"`
	Facebook        string    `json:"facebook"`
	Twitter         string    `json:"twitter"`
	Role            string    `json:"role"`
	IsActive        bool      `json:"isActive"`
	IsActiveAccount bool      `json:"isActiveAccount"`
	IsDarkMode      bool      `json:"isDarkMode"`
	Language        string    `json:"language"`
	QuoteCount      int       `json:"quoteCount"`
	FollowersCount  int       `json:"followersCount"`
	FollowingCount  int       `json:"followingCount"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// toUserResponse never exposes the password hash or pending token digests.
func toUserResponse(u models.User) userResponse {
	return userResponse{
		ID:              u.ID,
		Name:            u.Name,
		Username:        u.Username,
		Email:           u.Email,
		Avatar:          u.Avatar,
		Bio:             u.Bio,
		Facebook:        u.Facebook,
		Twitter:         u.Twitter,
		Role:            string(u.Role),
		IsActive:        u.IsActive,
		IsActiveAccount: u.IsActiveAccount,
		IsDarkMode:      u.IsDarkMode,
		Language:        u.Language,
		QuoteCount:      u.QuoteCount,
		FollowersCount:  u.FollowersCount,
		FollowingCount:  u.FollowingCount,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

type authorResponse struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

type postResponse struct {
	ID           string         `json:"_id"`
	Quote        string         `json:"quote"`
	QuoteFor     string         `json:"quoteFor"`
	IsPublic     bool           `json:"isPublic"`
	IsUserActive bool           `json:"isUserActive"`
	Likes        []string       `json:"likes"`
	Dislikes     []string       `json:"dislikes"`
	User         authorResponse `json:"user"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

func toPostResponse(p models.Post) postResponse {
	likes, dislikes := p.Likes, p.Dislikes
	if likes == nil {
		likes = []string{}
	}
	if dislikes == nil {
		dislikes = []string{}
	}
	return postResponse{
		ID:           p.ID,
		Quote:        p.Quote,
		QuoteFor:     p.QuoteFor,
		IsPublic:     p.IsPublic,
		IsUserActive: p.IsUserActive,
		Likes:        likes,
		Dislikes:     dislikes,
		User: authorResponse{
			ID:       p.UserID,
			Name:     p.Author.Name,
			Username: p.Author.Username,
			Avatar:   p.Author.Avatar,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

type bookmarkResponse struct {
	ID        string        `json:"_id"`
	User      string        `json:"user"`
	Post      *postResponse `json:"post"`
	CreatedAt time.Time     `json:"createdAt"`
}

func toBookmarkResponse(b models.Bookmark) bookmarkResponse {
	resp := bookmarkResponse{
		ID:        b.ID,
		User:      b.UserID,
		CreatedAt: b.CreatedAt,
	}
	if b.Post != nil {
		post := toPostResponse(*b.Post)
		resp.Post = &post
	}
	return resp
}

type likedUserResponse struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Username   string `json:"username"`
	Avatar     string `json:"avatar"`
	TotalLikes int    `json:"totalLikes"`
}

func toLikedUserResponse(u models.LikedUser) likedUserResponse {
	return likedUserResponse{
		ID:         u.User.ID,
		Name:       u.User.Name,
		Username:   u.User.Username,
		Avatar:     u.User.Avatar,
		TotalLikes: u.TotalLikes,
	}
}

func mapSlice[T, U any](items []T, fn func(T) U) []U {
	out := make([]U, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}
