package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindAndKeySurviveWrapping(t *testing.T) {
	base := New(KindNotFound, KeyUserNotFound)
	wrapped := fmt.Errorf("lookup: %w", base)

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, KeyUserNotFound, KeyOf(wrapped))
	assert.True(t, Is(wrapped, KindNotFound))
	assert.False(t, Is(wrapped, KindConflict))
}

func TestUntypedErrorsAreStoreErrors(t *testing.T) {
	err := errors.New("connection reset")

	assert.Equal(t, KindStore, KindOf(err))
	assert.Equal(t, KeyWrong, KeyOf(err))
	assert.False(t, Is(nil, KindStore))
}

func TestStoreKeepsExistingKind(t *testing.T) {
	typed := New(KindConflict, KeyDuplicate)
	assert.Same(t, typed, Store(typed))

	raw := errors.New("boom")
	stored := Store(raw)
	assert.Equal(t, KindStore, KindOf(stored))
	assert.ErrorIs(t, stored, raw)
	assert.Nil(t, Store(nil))
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindInvalidInput:          400,
		KindInvalidCredentials:    401,
		KindUnauthorized:          401,
		KindForbidden:             403,
		KindNotFound:              404,
		KindConflict:              409,
		KindInvalidOperation:      400,
		KindUnpublished:           400,
		KindInvalidOrExpiredToken: 400,
		KindDeliveryFailed:        502,
		KindRateLimited:           429,
		KindStore:                 500,
	}
	for kind, status := range cases {
		assert.Equal(t, status, HTTPStatus(kind), kind.String())
	}
}
