package repository

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrPostNotFound     = errors.New("post not found")
	ErrPostUnpublished  = errors.New("post unpublished")
	ErrBookmarkNotFound = errors.New("bookmark not found")
	ErrTokenNotFound    = errors.New("token not found or expired")
	ErrDuplicate        = errors.New("duplicate record")
	ErrConstraint       = errors.New("constraint violated")
)
