package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"ethraa/internal/apperr"
	"ethraa/internal/config"
	"ethraa/internal/ids"
	"ethraa/internal/mail"
	"ethraa/internal/models"
	"ethraa/internal/repository"
	"ethraa/internal/security"
)

const defaultLanguage = "en"

type AuthService struct {
	users  UserStore
	mailer mail.Mailer
	cfg    *config.AppConfig
	log    zerolog.Logger
	now    func() time.Time
}

func NewAuthService(users UserStore, mailer mail.Mailer, cfg *config.AppConfig, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		mailer: mailer,
		cfg:    cfg,
		log:    log,
		now:    time.Now,
	}
}

type SignupInput struct {
	Name     string
	Username string
	Email    string
	Password string
}

type AuthResult struct {
	Token string
	User  models.User
}

func (s *AuthService) Signup(ctx context.Context, input SignupInput) (AuthResult, error) {
	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return AuthResult{}, apperr.Store(err)
	}

	user, err := s.users.Create(ctx, models.User{
		ID:           ids.New(),
		Name:         strings.TrimSpace(input.Name),
		Username:     strings.TrimSpace(input.Username),
		Email:        strings.TrimSpace(strings.ToLower(input.Email)),
		PasswordHash: passwordHash,
		Avatar:       models.DefaultAvatar,
		Role:         models.UserRoleUser,
		Language:     defaultLanguage,
	})
	if err != nil {
		return AuthResult{}, translate(err)
	}

	return s.issue(user)
}

// Login accepts a username or an email address. Unknown accounts and wrong
// passwords produce the same error. A deactivated account is reactivated.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (AuthResult, error) {
	user, err := s.users.FindByIdentifier(ctx, strings.TrimSpace(identifier))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return AuthResult{}, apperr.New(apperr.KindInvalidCredentials, apperr.KeyCredentials)
		}
		return AuthResult{}, apperr.Store(err)
	}

	if !security.VerifyPassword(user.PasswordHash, password) {
		return AuthResult{}, apperr.New(apperr.KindInvalidCredentials, apperr.KeyCredentials)
	}

	if !user.IsActive {
		if err := s.users.SetActive(ctx, user.ID, true); err != nil {
			return AuthResult{}, translate(err)
		}
		user.IsActive = true
		s.log.Info().Str("user_id", user.ID).Msg("account reactivated on login")
	}

	return s.issue(user)
}

func (s *AuthService) ForgotPassword(ctx context.Context, identifier string) error {
	user, err := s.users.FindByIdentifier(ctx, strings.TrimSpace(identifier))
	if err != nil {
		return translate(err)
	}
	return s.sendToken(ctx, user, models.TokenPurposePasswordReset)
}

func (s *AuthService) VerifyAccountToken(ctx context.Context, actor models.User) error {
	user, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return translate(err)
	}
	return s.sendToken(ctx, user, models.TokenPurposeAccountVerification)
}

// sendToken persists a fresh token digest and mails the plaintext. When the
// mail cannot be delivered the digest is cleared again, unless a newer token
// replaced it meanwhile.
func (s *AuthService) sendToken(ctx context.Context, user models.User, purpose models.TokenPurpose) error {
	token, err := security.IssueSecretToken(s.now(), s.cfg.Security.SecretTokenTTL)
	if err != nil {
		return apperr.Store(err)
	}

	if err := s.users.SetSecretToken(ctx, user.ID, purpose, token.Digest, token.ExpiresAt); err != nil {
		return translate(err)
	}

	msg := mail.Message{
		Kind: mailKind(purpose),
		To:   user.Email,
		Name: user.Name,
		URL:  s.link(purpose, token.Plaintext),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		if clearErr := s.users.ClearSecretToken(context.WithoutCancel(ctx), user.ID, purpose, token.Digest); clearErr != nil {
			s.log.Error().Err(clearErr).Str("user_id", user.ID).Str("purpose", string(purpose)).Msg("clear secret token failed")
		}
		s.log.Warn().Err(err).Str("user_id", user.ID).Str("purpose", string(purpose)).Msg("mail delivery failed")
		return apperr.Wrap(apperr.KindDeliveryFailed, apperr.KeyMailError, err)
	}
	return nil
}

func mailKind(purpose models.TokenPurpose) mail.Kind {
	if purpose == models.TokenPurposePasswordReset {
		return mail.KindPasswordReset
	}
	return mail.KindAccountVerification
}

func (s *AuthService) link(purpose models.TokenPurpose, token string) string {
	base := strings.TrimSuffix(s.cfg.Frontend.BaseURL, "/")
	if purpose == models.TokenPurposePasswordReset {
		return base + "/auth/reset-password/" + token
	}
	return base + "/verify-account/" + token
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) (AuthResult, error) {
	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return AuthResult{}, apperr.Store(err)
	}

	user, err := s.users.ResetPasswordWithToken(ctx, security.DigestSecretToken(token), s.now(), passwordHash)
	if err != nil {
		return AuthResult{}, translate(err)
	}
	return s.issue(user)
}

// ActivateAccount marks the account email as verified. The returned session
// token carries the updated claims; tokens issued before activation stop
// authenticating.
func (s *AuthService) ActivateAccount(ctx context.Context, token string) (AuthResult, error) {
	user, err := s.users.ActivateWithToken(ctx, security.DigestSecretToken(token), s.now())
	if err != nil {
		return AuthResult{}, translate(err)
	}
	return s.issue(user)
}

func (s *AuthService) ChangePassword(ctx context.Context, actor models.User, oldPassword, newPassword string) (AuthResult, error) {
	user, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return AuthResult{}, translate(err)
	}
	if !security.VerifyPassword(user.PasswordHash, oldPassword) {
		return AuthResult{}, apperr.New(apperr.KindInvalidInput, apperr.KeyOldPassword)
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return AuthResult{}, apperr.Store(err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		return AuthResult{}, translate(err)
	}
	user.PasswordHash = passwordHash
	return s.issue(user)
}

func (s *AuthService) SetPassword(ctx context.Context, actor models.User, username, newPassword string) error {
	if err := requireRole(actor, models.UserRoleAdmin); err != nil {
		return err
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return translate(err)
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return apperr.Store(err)
	}
	return translate(s.users.UpdatePassword(ctx, user.ID, passwordHash))
}

// Authenticate resolves a bearer token to its account. The token is rejected
// once the account is gone or its email, username or verification flag no
// longer match the claims.
func (s *AuthService) Authenticate(ctx context.Context, token string) (models.User, error) {
	claims, err := security.ParseSessionToken(token, s.cfg.Security.JWTSecret)
	if err != nil {
		return models.User{}, apperr.Wrap(apperr.KindUnauthorized, apperr.KeyUnauthenticated, err)
	}

	user, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return models.User{}, apperr.Wrap(apperr.KindUnauthorized, apperr.KeyUnauthenticated, err)
		}
		return models.User{}, apperr.Store(err)
	}

	if user.Email != claims.Email || user.Username != claims.Username || user.IsActiveAccount != claims.IsActiveAccount {
		return models.User{}, apperr.New(apperr.KindUnauthorized, apperr.KeyUnauthenticated)
	}
	return user, nil
}

func (s *AuthService) issue(user models.User) (AuthResult, error) {
	token, err := security.GenerateSessionToken(s.cfg.Security.JWTSecret, security.SessionSubject{
		UserID:          user.ID,
		Email:           user.Email,
		Username:        user.Username,
		IsActiveAccount: user.IsActiveAccount,
	}, s.now(), s.cfg.Security.JWTTTL)
	if err != nil {
		return AuthResult{}, apperr.Store(err)
	}
	return AuthResult{Token: token, User: user}, nil
}
