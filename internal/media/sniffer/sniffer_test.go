package sniffer

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectHead(t *testing.T) {
	cases := map[string]struct {
		head []byte
		want MediaType
	}{
		"jpeg": {head: []byte{0xff, 0xd8, 0xff, 0xe0, 0x00}, want: TypeJPEG},
		"png":  {head: []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0}, want: TypePNG},
		"gif":  {head: []byte("GIF89a......"), want: TypeGIF},
		"webp": {head: []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), want: TypeWEBP},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			res, err := DetectHead(tc.head)
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.Type)
		})
	}

	_, err := DetectHead([]byte("<svg></svg>"))
	assert.ErrorIs(t, err, ErrUnknownType)
	_, err = DetectHead(nil)
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestDetectReplaysHead(t *testing.T) {
	payload := append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, bytes.Repeat([]byte{1}, 2000)...)

	res, r, err := Detect(bytes.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, "png", res.Extension())

	all, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, payload, all)
}

func TestDeclaredMIME(t *testing.T) {
	assert.Equal(t, "image/png", DeclaredMIME("image/png; charset=binary"))
	assert.Equal(t, "", DeclaredMIME(""))
	assert.Equal(t, "jpg", Result{Type: TypeJPEG}.Extension())
}
