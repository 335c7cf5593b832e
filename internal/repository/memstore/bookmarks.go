package memstore

import (
	"context"

	"ethraa/internal/models"
	"ethraa/internal/query"
	"ethraa/internal/repository"
)

type Bookmarks struct {
	s *Store
}

func (r Bookmarks) Toggle(_ context.Context, bookmark models.Bookmark) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.posts[bookmark.PostID]
	if !ok || !p.Visible() {
		return false, repository.ErrPostNotFound
	}

	for id, b := range r.s.bookmarks {
		if b.UserID == bookmark.UserID && b.PostID == bookmark.PostID {
			delete(r.s.bookmarks, id)
			return false, nil
		}
	}

	bookmark.Post = nil
	bookmark.CreatedAt = r.s.now()
	r.s.bookmarks[bookmark.ID] = bookmark
	return true, nil
}

func (r Bookmarks) bookmark(id string) (models.Bookmark, bool) {
	b, ok := r.s.bookmarks[id]
	if !ok {
		return models.Bookmark{}, false
	}
	if p, ok := r.s.post(b.PostID); ok {
		b.Post = &p
	}
	return b, true
}

func (r Bookmarks) GetByID(_ context.Context, id string) (models.Bookmark, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.bookmark(id)
	if !ok {
		return models.Bookmark{}, repository.ErrBookmarkNotFound
	}
	return b, nil
}

func (r Bookmarks) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.bookmarks[id]; !ok {
		return repository.ErrBookmarkNotFound
	}
	delete(r.s.bookmarks, id)
	return nil
}

func (r Bookmarks) DeleteAll(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	deleted := int64(len(r.s.bookmarks))
	clear(r.s.bookmarks)
	return deleted, nil
}

func (r Bookmarks) List(_ context.Context, scope models.BookmarkScope, params query.Params) (query.Page[models.Bookmark], error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	items := make([]models.Bookmark, 0, len(r.s.bookmarks))
	for id, b := range r.s.bookmarks {
		if scope.UserID != "" && b.UserID != scope.UserID {
			continue
		}
		out, _ := r.bookmark(id)
		if scope.VisibleOnly && (out.Post == nil || !out.Post.Visible()) {
			continue
		}
		items = append(items, out)
	}
	return query.Slice(items, repository.BookmarkDomain, params, bookmarkField), nil
}

func bookmarkField(b models.Bookmark, field string) any {
	switch field {
	case "id":
		return b.ID
	case "user":
		return b.UserID
	case "post":
		return b.PostID
	case "createdAt":
		return b.CreatedAt
	}
	return nil
}
