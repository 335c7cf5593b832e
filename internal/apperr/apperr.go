// Package apperr defines the error kinds every service operation reports.
// Each error carries a stable message key that clients can translate.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindStore Kind = iota
	KindInvalidInput
	KindInvalidCredentials
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindInvalidOperation
	KindUnpublished
	KindInvalidOrExpiredToken
	KindDeliveryFailed
	KindRateLimited
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalidOperation:
		return "invalid_operation"
	case KindUnpublished:
		return "unpublished"
	case KindInvalidOrExpiredToken:
		return "invalid_or_expired_token"
	case KindDeliveryFailed:
		return "delivery_failed"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "store_error"
	}
}

// Message keys shared by services and handlers.
const (
	KeyWrong              = "errors.global.wrong"
	KeyDuplicate          = "errors.global.duplicate"
	KeyInvalidToken       = "errors.global.invalid_token"
	KeyRateLimit          = "errors.global.rate_limit"
	KeyRouteNotFound      = "errors.global.route_not_found"
	KeyValidation         = "errors.global.validation"
	KeyMailError          = "errors.mail_error"
	KeyUnauthenticated    = "errors.guard.unAuth"
	KeyPermission         = "errors.guard.permission"
	KeyUserNotFound       = "errors.user.not_found"
	KeyCredentials        = "errors.user.credentials"
	KeyNotFollowMe        = "errors.user.not_follow_me"
	KeyOldPassword        = "errors.user.old_password"
	KeyAvatarNotBelong    = "errors.user.change_avatar_not_belong"
	KeyInvalidImage       = "errors.user.invalid_image"
	KeyPostNotFound       = "errors.post.not_found"
	KeyPostUnpublished    = "errors.post.unpublished"
	KeyPostAccountPending = "errors.post.not_account_active"
	KeyPostNotOwned       = "errors.post.not_belong_to_user"
	KeyBookmarkNotFound   = "errors.bookmark.not_found"
)

type Error struct {
	Kind Kind
	Key  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%s): %v", e.Key, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s (%s)", e.Key, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, key string) *Error {
	return &Error{Kind: kind, Key: key}
}

func Wrap(kind Kind, key string, err error) *Error {
	return &Error{Kind: kind, Key: key, Err: err}
}

// Store wraps an infrastructure failure. Errors that already carry a kind
// pass through untouched.
func Store(err error) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	return Wrap(KindStore, KeyWrong, err)
}

// KindOf reports the kind of err. Untyped errors count as store errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStore
}

func KeyOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Key != "" {
		return appErr.Key
	}
	return KeyWrong
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
