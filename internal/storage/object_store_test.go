package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ethraa/internal/config"
)

func TestPublicURLRoundTrip(t *testing.T) {
	store, err := NewObjectStore(config.StorageConfig{
		Endpoint:      "https://files.example.com",
		BucketAvatars: "avatars",
		Region:        "us-east-1",
	})
	require.NoError(t, err)

	url := store.PublicURL("u1/abc.png")
	assert.Equal(t, "https://files.example.com/avatars/u1/abc.png", url)

	key, ok := store.KeyFromURL(url)
	assert.True(t, ok)
	assert.Equal(t, "u1/abc.png", key)

	_, ok = store.KeyFromURL("avatar-placeholder")
	assert.False(t, ok)
}

func TestPublicURLPrefersConfiguredBase(t *testing.T) {
	store, err := NewObjectStore(config.StorageConfig{
		Endpoint:      "minio:9000",
		BucketAvatars: "avatars",
		PublicBaseURL: "https://cdn.example.com/",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/avatars/k.webp", store.PublicURL("k.webp"))
}
