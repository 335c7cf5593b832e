// Package memstore keeps accounts, posts, follows and bookmarks in memory.
// It follows the same toggle, cascade and listing rules as the Postgres
// repositories and backs the service and handler tests.
package memstore

import (
	"slices"
	"strings"
	"sync"
	"time"

	"ethraa/internal/models"
)

type Store struct {
	mu        sync.Mutex
	users     map[string]models.User
	follows   models.FollowSet
	posts     map[string]models.Post
	bookmarks map[string]models.Bookmark
	now       func() time.Time
}

func New() *Store {
	return &Store{
		users:     make(map[string]models.User),
		follows:   make(models.FollowSet),
		posts:     make(map[string]models.Post),
		bookmarks: make(map[string]models.Bookmark),
		now:       time.Now,
	}
}

func (s *Store) Users() Users         { return Users{s} }
func (s *Store) Follows() Follows     { return Follows{s} }
func (s *Store) Posts() Posts         { return Posts{s} }
func (s *Store) Bookmarks() Bookmarks { return Bookmarks{s} }
func (s *Store) Stats() Stats         { return Stats{s} }

// user returns the stored account with its counters derived from the edges
// and posts currently held.
func (s *Store) user(id string) (models.User, bool) {
	u, ok := s.users[id]
	if !ok {
		return models.User{}, false
	}
	u.FollowersCount = len(s.follows.Followers(id))
	u.FollowingCount = len(s.follows.Following(id))
	u.QuoteCount = 0
	for _, p := range s.posts {
		if p.UserID == id {
			u.QuoteCount++
		}
	}
	return u, true
}

func (s *Store) usersByID(ids []string) []models.User {
	out := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := s.user(id); ok {
			out = append(out, u)
		}
	}
	return out
}

func (s *Store) findUser(match func(models.User) bool) (models.User, bool) {
	for id, u := range s.users {
		if match(u) {
			return s.user(id)
		}
	}
	return models.User{}, false
}

func (s *Store) post(id string) (models.Post, bool) {
	p, ok := s.posts[id]
	if !ok {
		return models.Post{}, false
	}
	p.Likes = slices.Clone(p.Likes)
	p.Dislikes = slices.Clone(p.Dislikes)
	if author, ok := s.users[p.UserID]; ok {
		p.Author = models.Author{ID: author.ID, Name: author.Name, Username: author.Username, Avatar: author.Avatar}
	}
	return p, true
}

// deleteUser mirrors the foreign key cascade of the users table.
func (s *Store) deleteUser(id string) bool {
	if _, ok := s.users[id]; !ok {
		return false
	}
	delete(s.users, id)
	s.follows.RemoveAccount(id)

	for postID, p := range s.posts {
		if p.UserID == id {
			s.deletePost(postID)
			continue
		}
		p.Likes = removeID(p.Likes, id)
		p.Dislikes = removeID(p.Dislikes, id)
		s.posts[postID] = p
	}
	for bookmarkID, b := range s.bookmarks {
		if b.UserID == id {
			delete(s.bookmarks, bookmarkID)
		}
	}
	return true
}

func (s *Store) deletePost(id string) {
	delete(s.posts, id)
	for bookmarkID, b := range s.bookmarks {
		if b.PostID == id {
			delete(s.bookmarks, bookmarkID)
		}
	}
}

func removeID(ids []string, id string) []string {
	return slices.DeleteFunc(slices.Clone(ids), func(v string) bool { return v == id })
}

func sameUsername(a, b string) bool {
	return strings.EqualFold(a, b)
}
