package service

import (
	"context"

	"github.com/rs/zerolog"

	"ethraa/internal/apperr"
	"ethraa/internal/ids"
	"ethraa/internal/models"
	"ethraa/internal/query"
)

type BookmarkService struct {
	bookmarks BookmarkStore
	log       zerolog.Logger
}

func NewBookmarkService(bookmarks BookmarkStore, log zerolog.Logger) *BookmarkService {
	return &BookmarkService{bookmarks: bookmarks, log: log}
}

func (s *BookmarkService) ListAll(ctx context.Context, actor models.User, params query.Params) (query.Page[models.Bookmark], error) {
	if err := requireRole(actor, models.UserRoleAdmin); err != nil {
		return query.Page[models.Bookmark]{}, err
	}
	page, err := s.bookmarks.List(ctx, models.BookmarkScope{}, params)
	if err != nil {
		return query.Page[models.Bookmark]{}, translate(err)
	}
	return page, nil
}

// ListMine lists the actor's bookmarks whose post is still visible.
func (s *BookmarkService) ListMine(ctx context.Context, actor models.User, params query.Params) (query.Page[models.Bookmark], error) {
	page, err := s.bookmarks.List(ctx, models.BookmarkScope{UserID: actor.ID, VisibleOnly: true}, params)
	if err != nil {
		return query.Page[models.Bookmark]{}, translate(err)
	}
	return page, nil
}

// Toggle bookmarks postID for actor, or removes the bookmark when it exists.
// It reports whether the post is bookmarked afterwards.
func (s *BookmarkService) Toggle(ctx context.Context, actor models.User, postID string) (bool, error) {
	bookmarked, err := s.bookmarks.Toggle(ctx, models.Bookmark{
		ID:     ids.New(),
		UserID: actor.ID,
		PostID: postID,
	})
	if err != nil {
		return false, translate(err)
	}
	return bookmarked, nil
}

func (s *BookmarkService) Delete(ctx context.Context, actor models.User, id string) error {
	bookmark, err := s.bookmarks.GetByID(ctx, id)
	if err != nil {
		return translate(err)
	}
	if err := ownerOrAdmin(actor, bookmark.UserID, apperr.KeyPermission); err != nil {
		return err
	}
	return translate(s.bookmarks.Delete(ctx, id))
}

func (s *BookmarkService) DeleteAll(ctx context.Context, actor models.User) (int64, error) {
	if err := requireRole(actor, models.UserRoleAdmin); err != nil {
		return 0, err
	}
	deleted, err := s.bookmarks.DeleteAll(ctx)
	if err != nil {
		return 0, translate(err)
	}
	return deleted, nil
}
