package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/rs/zerolog"

	"ethraa/internal/apperr"
	"ethraa/internal/ids"
	"ethraa/internal/media/sniffer"
	"ethraa/internal/models"
)

const DefaultMaxAvatarBytes = 3 << 20

// AvatarStore keeps avatar objects and hands out their public URLs.
type AvatarStore interface {
	PutAvatar(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
	RemoveAvatar(ctx context.Context, key string) error
	KeyFromURL(raw string) (string, bool)
}

type UploadInput struct {
	Actor       models.User
	Username    string
	File        io.Reader
	Size        int64
	ContentType string
}

type UploadService struct {
	users    UserStore
	store    AvatarStore
	maxBytes int64
	log      zerolog.Logger
}

func NewUploadService(users UserStore, store AvatarStore, maxBytes int64, log zerolog.Logger) *UploadService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxAvatarBytes
	}
	return &UploadService{
		users:    users,
		store:    store,
		maxBytes: maxBytes,
		log:      log,
	}
}

// UploadAvatar stores a new avatar for username. Only the account owner or
// an admin may change it. The image type is taken from the file content.
func (s *UploadService) UploadAvatar(ctx context.Context, input UploadInput) (models.User, error) {
	target, err := s.users.FindByUsername(ctx, input.Username)
	if err != nil {
		return models.User{}, translate(err)
	}
	if err := ownerOrAdmin(input.Actor, target.ID, apperr.KeyAvatarNotBelong); err != nil {
		return models.User{}, err
	}

	if input.File == nil || input.Size <= 0 || input.Size > s.maxBytes {
		return models.User{}, apperr.New(apperr.KindInvalidInput, apperr.KeyInvalidImage)
	}

	result, body, err := sniffer.Detect(input.File)
	if err != nil {
		return models.User{}, apperr.Wrap(apperr.KindInvalidInput, apperr.KeyInvalidImage, err)
	}

	declared := sniffer.DeclaredMIME(input.ContentType)
	if declared != "" && declared != result.MIME {
		return models.User{}, apperr.Wrap(apperr.KindInvalidInput, apperr.KeyInvalidImage,
			fmt.Errorf("content type mismatch: declared %s, actual %s", declared, result.MIME))
	}

	objectKey := s.buildObjectKey(target.ID, result.Extension())
	url, err := s.store.PutAvatar(ctx, objectKey, io.LimitReader(body, s.maxBytes), input.Size, result.MIME)
	if err != nil {
		return models.User{}, apperr.Store(fmt.Errorf("put avatar: %w", err))
	}

	user, err := s.users.SetAvatar(ctx, target.ID, url)
	if err != nil {
		return models.User{}, translate(err)
	}

	if oldKey, ok := s.store.KeyFromURL(target.Avatar); ok {
		if err := s.store.RemoveAvatar(ctx, oldKey); err != nil {
			s.log.Warn().Err(err).Str("user_id", target.ID).Str("object", oldKey).Msg("remove previous avatar failed")
		}
	}
	return user, nil
}

func (s *UploadService) buildObjectKey(userID, ext string) string {
	datePrefix := time.Now().UTC().Format("2006/01")
	return path.Join(userID, datePrefix, fmt.Sprintf("%s.%s", ids.New(), ext))
}
