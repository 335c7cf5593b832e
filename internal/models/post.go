package models

import "time"

const DefaultQuoteFor = "Unknown"

type Author struct {
	ID       string
	Name     string
	Username string
	Avatar   string
}

type Post struct {
	ID           string
	UserID       string
	Quote        string
	QuoteFor     string
	IsPublic     bool
	IsUserActive bool
	Likes        []string
	Dislikes     []string
	Author       Author
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Visible reports whether the post may be shown to accounts other than its owner.
func (p Post) Visible() bool {
	return p.IsPublic && p.IsUserActive
}

type PostUpdate struct {
	Quote    *string
	QuoteFor *string
	IsPublic *bool
}

// PostScope narrows post listings. Zero value lists everything.
type PostScope struct {
	UserID      string
	FollowedBy  string
	VisibleOnly bool
	// AuthorRoleUser drops posts whose author is not a plain user.
	AuthorRoleUser bool
}

type Bookmark struct {
	ID        string
	UserID    string
	PostID    string
	Post      *Post
	CreatedAt time.Time
}

type BookmarkScope struct {
	UserID      string
	VisibleOnly bool
}
