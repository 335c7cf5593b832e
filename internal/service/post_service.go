package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"ethraa/internal/apperr"
	"ethraa/internal/ids"
	"ethraa/internal/models"
	"ethraa/internal/query"
)

type PostService struct {
	posts PostStore
	users UserStore
	log   zerolog.Logger
}

func NewPostService(posts PostStore, users UserStore, log zerolog.Logger) *PostService {
	return &PostService{posts: posts, users: users, log: log}
}

type PostInput struct {
	Quote    string
	QuoteFor string
	IsPublic *bool
}

func (s *PostService) list(ctx context.Context, scope models.PostScope, params query.Params) (query.Page[models.Post], error) {
	page, err := s.posts.List(ctx, scope, params)
	if err != nil {
		return query.Page[models.Post]{}, translate(err)
	}
	return page, nil
}

func (s *PostService) ListAll(ctx context.Context, actor models.User, params query.Params) (query.Page[models.Post], error) {
	if err := requireRole(actor, models.UserRoleAdmin); err != nil {
		return query.Page[models.Post]{}, err
	}
	return s.list(ctx, models.PostScope{}, params)
}

// ListForUsers lists public posts of active accounts with the user role.
func (s *PostService) ListForUsers(ctx context.Context, params query.Params) (query.Page[models.Post], error) {
	return s.list(ctx, models.PostScope{VisibleOnly: true, AuthorRoleUser: true}, params)
}

func (s *PostService) ListFollowing(ctx context.Context, actor models.User, params query.Params) (query.Page[models.Post], error) {
	return s.list(ctx, models.PostScope{FollowedBy: actor.ID, VisibleOnly: true}, params)
}

// ListForUser lists the posts of username. The owner and admins see every
// post; other accounts only see visible posts of an active author.
func (s *PostService) ListForUser(ctx context.Context, actor models.User, username string, params query.Params) (query.Page[models.Post], error) {
	author, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return query.Page[models.Post]{}, translate(err)
	}

	scope := models.PostScope{UserID: author.ID}
	if !isAdmin(actor) && actor.ID != author.ID {
		if !author.IsActive {
			return query.Page[models.Post]{}, apperr.New(apperr.KindNotFound, apperr.KeyUserNotFound)
		}
		scope.VisibleOnly = true
	}
	return s.list(ctx, scope, params)
}

func (s *PostService) Get(ctx context.Context, actor models.User, id string) (models.Post, error) {
	if err := requireRole(actor, models.UserRoleAdmin); err != nil {
		return models.Post{}, err
	}
	post, err := s.posts.GetByID(ctx, id)
	return post, translate(err)
}

// Create publishes a post. Accounts must have verified their email first.
func (s *PostService) Create(ctx context.Context, actor models.User, input PostInput) (models.Post, error) {
	if !actor.IsActiveAccount {
		return models.Post{}, apperr.New(apperr.KindForbidden, apperr.KeyPostAccountPending)
	}

	quoteFor := strings.TrimSpace(input.QuoteFor)
	if quoteFor == "" {
		quoteFor = models.DefaultQuoteFor
	}
	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	post, err := s.posts.Create(ctx, models.Post{
		ID:           ids.New(),
		UserID:       actor.ID,
		Quote:        strings.TrimSpace(input.Quote),
		QuoteFor:     quoteFor,
		IsPublic:     isPublic,
		IsUserActive: actor.IsActive,
	})
	if err != nil {
		return models.Post{}, translate(err)
	}
	return post, nil
}

func (s *PostService) Update(ctx context.Context, actor models.User, id string, update models.PostUpdate) (models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return models.Post{}, translate(err)
	}
	if err := ownerOrAdmin(actor, post.UserID, apperr.KeyPostNotOwned); err != nil {
		return models.Post{}, err
	}

	if update.QuoteFor != nil && strings.TrimSpace(*update.QuoteFor) == "" {
		fallback := models.DefaultQuoteFor
		update.QuoteFor = &fallback
	}
	updated, err := s.posts.Update(ctx, id, update)
	return updated, translate(err)
}

// Delete removes a post. Admins may delete any post; other accounts only
// their own, and someone else's post is reported as missing.
func (s *PostService) Delete(ctx context.Context, actor models.User, id string) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return translate(err)
	}
	if !isAdmin(actor) && post.UserID != actor.ID {
		return apperr.New(apperr.KindNotFound, apperr.KeyPostNotFound)
	}
	return translate(s.posts.Delete(ctx, id))
}

func (s *PostService) DeleteAll(ctx context.Context, actor models.User) (int64, error) {
	if err := requireRole(actor, models.UserRoleAdmin); err != nil {
		return 0, err
	}
	deleted, err := s.posts.DeleteAll(ctx)
	if err != nil {
		return 0, translate(err)
	}
	s.log.Warn().Int64("deleted", deleted).Str("admin_id", actor.ID).Msg("all posts deleted")
	return deleted, nil
}

// React toggles kind for actor on a public post. Reacting twice with the same
// kind removes the reaction; switching kinds replaces it.
func (s *PostService) React(ctx context.Context, actor models.User, postID string, kind models.ReactionKind) (models.Post, error) {
	if !kind.Valid() {
		return models.Post{}, apperr.New(apperr.KindInvalidInput, apperr.KeyValidation)
	}
	post, err := s.posts.ToggleReaction(ctx, postID, actor.ID, kind)
	if err != nil {
		return models.Post{}, translate(err)
	}
	return post, nil
}

func (s *PostService) Like(ctx context.Context, actor models.User, postID string) (models.Post, error) {
	return s.React(ctx, actor, postID, models.ReactionLike)
}

func (s *PostService) Dislike(ctx context.Context, actor models.User, postID string) (models.Post, error) {
	return s.React(ctx, actor, postID, models.ReactionDislike)
}
