package memstore

import (
	"context"
	"slices"
	"strings"

	"ethraa/internal/models"
	"ethraa/internal/query"
	"ethraa/internal/repository"
)

type Posts struct {
	s *Store
}

func (r Posts) Create(_ context.Context, post models.Post) (models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[post.ID]; ok {
		return models.Post{}, repository.ErrDuplicate
	}
	if _, ok := r.s.users[post.UserID]; !ok {
		return models.Post{}, repository.ErrUserNotFound
	}
	now := r.s.now()
	post.CreatedAt, post.UpdatedAt = now, now
	post.Likes, post.Dislikes = nil, nil
	r.s.posts[post.ID] = post
	out, _ := r.s.post(post.ID)
	return out, nil
}

func (r Posts) GetByID(_ context.Context, id string) (models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.post(id)
	if !ok {
		return models.Post{}, repository.ErrPostNotFound
	}
	return p, nil
}

func (r Posts) Update(_ context.Context, id string, update models.PostUpdate) (models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.posts[id]
	if !ok {
		return models.Post{}, repository.ErrPostNotFound
	}
	if update.Quote != nil {
		p.Quote = *update.Quote
	}
	if update.QuoteFor != nil {
		p.QuoteFor = *update.QuoteFor
	}
	if update.IsPublic != nil {
		p.IsPublic = *update.IsPublic
	}
	p.UpdatedAt = r.s.now()
	r.s.posts[id] = p
	out, _ := r.s.post(id)
	return out, nil
}

func (r Posts) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[id]; !ok {
		return repository.ErrPostNotFound
	}
	r.s.deletePost(id)
	return nil
}

func (r Posts) DeleteAll(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	deleted := int64(len(r.s.posts))
	for id := range r.s.posts {
		r.s.deletePost(id)
	}
	return deleted, nil
}

func (r Posts) List(_ context.Context, scope models.PostScope, params query.Params) (query.Page[models.Post], error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	items := make([]models.Post, 0, len(r.s.posts))
	for id, p := range r.s.posts {
		if scope.UserID != "" && p.UserID != scope.UserID {
			continue
		}
		if scope.FollowedBy != "" && !r.s.follows.Follows(scope.FollowedBy, p.UserID) {
			continue
		}
		if scope.VisibleOnly && !p.Visible() {
			continue
		}
		if scope.AuthorRoleUser && r.s.users[p.UserID].Role != models.UserRoleUser {
			continue
		}
		out, _ := r.s.post(id)
		items = append(items, out)
	}
	return query.Slice(items, repository.PostDomain, params, postField), nil
}

func (r Posts) ToggleReaction(_ context.Context, postID, userID string, kind models.ReactionKind) (models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.posts[postID]
	if !ok {
		return models.Post{}, repository.ErrPostNotFound
	}
	if !p.IsPublic {
		return models.Post{}, repository.ErrPostUnpublished
	}
	p, _ = models.ApplyReaction(p, userID, kind)
	r.s.posts[postID] = p
	out, _ := r.s.post(postID)
	return out, nil
}

func postField(p models.Post, field string) any {
	switch field {
	case "id":
		return p.ID
	case "user":
		return p.UserID
	case "username":
		return p.Author.Username
	case "quote":
		return p.Quote
	case "quoteFor":
		return p.QuoteFor
	case "isPublic":
		return p.IsPublic
	case "isUserActive":
		return p.IsUserActive
	case "likesCount":
		return len(p.Likes)
	case "createdAt":
		return p.CreatedAt
	case "updatedAt":
		return p.UpdatedAt
	}
	return nil
}

type Follows struct {
	s *Store
}

func (r Follows) Toggle(_ context.Context, followerID, followeeID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[followerID]; !ok {
		return false, repository.ErrUserNotFound
	}
	if _, ok := r.s.users[followeeID]; !ok {
		return false, repository.ErrUserNotFound
	}
	return r.s.follows.Toggle(followerID, followeeID), nil
}

func (r Follows) IsFollowing(_ context.Context, followerID, followeeID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.s.follows.Follows(followerID, followeeID), nil
}

type Stats struct {
	s *Store
}

func (r Stats) TopLikedUsers(_ context.Context, limit int) ([]models.LikedUser, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	totals := make(map[string]int)
	for _, p := range r.s.posts {
		totals[p.UserID] += len(p.Likes)
	}

	var ranked []models.LikedUser
	for id, total := range totals {
		u, ok := r.s.user(id)
		if !ok || !u.IsActive || total == 0 {
			continue
		}
		ranked = append(ranked, models.LikedUser{User: u, TotalLikes: total})
	}
	slices.SortFunc(ranked, func(a, b models.LikedUser) int {
		if a.TotalLikes != b.TotalLikes {
			return b.TotalLikes - a.TotalLikes
		}
		return strings.Compare(a.User.ID, b.User.ID)
	})
	return ranked[:min(limit, len(ranked))], nil
}

func (r Stats) TopLikedPosts(_ context.Context, limit int) ([]models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var ranked []models.Post
	for id, p := range r.s.posts {
		if !p.Visible() || len(p.Likes) == 0 {
			continue
		}
		out, _ := r.s.post(id)
		ranked = append(ranked, out)
	}
	slices.SortFunc(ranked, func(a, b models.Post) int {
		if len(a.Likes) != len(b.Likes) {
			return len(b.Likes) - len(a.Likes)
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return ranked[:min(limit, len(ranked))], nil
}
