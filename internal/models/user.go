package models

import "time"

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

func (r UserRole) Valid() bool {
	return r == UserRoleUser || r == UserRoleAdmin
}

const DefaultAvatar = "avatar-placeholder"

type TokenPurpose string

const (
	TokenPurposePasswordReset       TokenPurpose = "password_reset"
	TokenPurposeAccountVerification TokenPurpose = "account_verification"
)

// PendingToken is the persisted half of a secret token.
type PendingToken struct {
	Digest    string
	ExpiresAt time.Time
}

type User struct {
	ID              string
	Name            string
	Username        string
	Email           string
	PasswordHash    []byte
	Avatar          string
	Bio             string
	Facebook        string
	Twitter         string
	Role            UserRole
	IsActive        bool
	IsActiveAccount bool
	IsDarkMode      bool
	Language        string
	QuoteCount      int
	FollowersCount  int
	FollowingCount  int

	PasswordReset       *PendingToken
	AccountVerification *PendingToken

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u User) PendingToken(purpose TokenPurpose) *PendingToken {
	if purpose == TokenPurposePasswordReset {
		return u.PasswordReset
	}
	return u.AccountVerification
}

// ProfileUpdate carries optional profile changes; nil fields stay as they are.
type ProfileUpdate struct {
	Name     *string
	Bio      *string
	Facebook *string
	Twitter  *string
	Role     *UserRole
}

type SettingsUpdate struct {
	IsDarkMode *bool
	Language   *string
}

// UserScope narrows account listings.
type UserScope struct {
	// ActiveUsersOnly restricts to active accounts with the user role.
	ActiveUsersOnly bool
	ExcludeID       string
}

// LikedUser is an account ranked by the likes its posts collected.
type LikedUser struct {
	User       User
	TotalLikes int
}
