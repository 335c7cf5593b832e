package service

import (
	"context"
	"errors"
	"time"

	"ethraa/internal/apperr"
	"ethraa/internal/models"
	"ethraa/internal/query"
	"ethraa/internal/repository"
)

type UserStore interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByIdentifier(ctx context.Context, identifier string) (models.User, error)
	SetActive(ctx context.Context, id string, active bool) error
	SetSecretToken(ctx context.Context, id string, purpose models.TokenPurpose, digest string, expiresAt time.Time) error
	ClearSecretToken(ctx context.Context, id string, purpose models.TokenPurpose, digest string) error
	ResetPasswordWithToken(ctx context.Context, digest string, now time.Time, passwordHash []byte) (models.User, error)
	ActivateWithToken(ctx context.Context, digest string, now time.Time) (models.User, error)
	UpdatePassword(ctx context.Context, id string, passwordHash []byte) error
	UpdateProfile(ctx context.Context, id string, update models.ProfileUpdate) (models.User, error)
	UpdateSettings(ctx context.Context, id string, update models.SettingsUpdate) (models.User, error)
	SetAvatar(ctx context.Context, id string, avatar string) (models.User, error)
	Delete(ctx context.Context, id string) error
	DeleteAllUsers(ctx context.Context) (int64, error)
	List(ctx context.Context, scope models.UserScope, params query.Params) (query.Page[models.User], error)
	ListFollowers(ctx context.Context, userID string, params query.Params) (query.Page[models.User], error)
	ListFollowing(ctx context.Context, userID string, params query.Params) (query.Page[models.User], error)
	ListSuggestions(ctx context.Context, userID string, params query.Params) (query.Page[models.User], error)
}

type FollowStore interface {
	Toggle(ctx context.Context, followerID, followeeID string) (bool, error)
	IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error)
}

type PostStore interface {
	Create(ctx context.Context, post models.Post) (models.Post, error)
	GetByID(ctx context.Context, id string) (models.Post, error)
	Update(ctx context.Context, id string, update models.PostUpdate) (models.Post, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
	List(ctx context.Context, scope models.PostScope, params query.Params) (query.Page[models.Post], error)
	ToggleReaction(ctx context.Context, postID, userID string, kind models.ReactionKind) (models.Post, error)
}

type BookmarkStore interface {
	Toggle(ctx context.Context, bookmark models.Bookmark) (bool, error)
	GetByID(ctx context.Context, id string) (models.Bookmark, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
	List(ctx context.Context, scope models.BookmarkScope, params query.Params) (query.Page[models.Bookmark], error)
}

type StatsStore interface {
	TopLikedUsers(ctx context.Context, limit int) ([]models.LikedUser, error)
	TopLikedPosts(ctx context.Context, limit int) ([]models.Post, error)
}

// translate maps repository sentinels onto error kinds.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrUserNotFound):
		return apperr.Wrap(apperr.KindNotFound, apperr.KeyUserNotFound, err)
	case errors.Is(err, repository.ErrPostNotFound):
		return apperr.Wrap(apperr.KindNotFound, apperr.KeyPostNotFound, err)
	case errors.Is(err, repository.ErrPostUnpublished):
		return apperr.Wrap(apperr.KindUnpublished, apperr.KeyPostUnpublished, err)
	case errors.Is(err, repository.ErrBookmarkNotFound):
		return apperr.Wrap(apperr.KindNotFound, apperr.KeyBookmarkNotFound, err)
	case errors.Is(err, repository.ErrTokenNotFound):
		return apperr.Wrap(apperr.KindInvalidOrExpiredToken, apperr.KeyInvalidToken, err)
	case errors.Is(err, repository.ErrDuplicate):
		return apperr.Wrap(apperr.KindConflict, apperr.KeyDuplicate, err)
	case errors.Is(err, repository.ErrConstraint):
		return apperr.Wrap(apperr.KindInvalidInput, apperr.KeyValidation, err)
	}
	return apperr.Store(err)
}
