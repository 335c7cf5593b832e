package service

import (
	"context"

	"github.com/rs/zerolog"

	"ethraa/internal/apperr"
	"ethraa/internal/models"
	"ethraa/internal/query"
)

type UserService struct {
	users UserStore
	log   zerolog.Logger
}

func NewUserService(users UserStore, log zerolog.Logger) *UserService {
	return &UserService{users: users, log: log}
}

// List shows admins every account; everyone else sees active accounts with
// the user role.
func (s *UserService) List(ctx context.Context, actor models.User, params query.Params) (query.Page[models.User], error) {
	scope := models.UserScope{ActiveUsersOnly: !isAdmin(actor)}
	page, err := s.users.List(ctx, scope, params)
	if err != nil {
		return query.Page[models.User]{}, translate(err)
	}
	return page, nil
}

func (s *UserService) Get(ctx context.Context, actor models.User, username string) (models.User, error) {
	if err := requireRole(actor, models.UserRoleAdmin); err != nil {
		return models.User{}, err
	}
	user, err := s.users.FindByUsername(ctx, username)
	return user, translate(err)
}

// GetForUsers returns a public profile. Inactive accounts and admins are
// reported as missing.
func (s *UserService) GetForUsers(ctx context.Context, username string) (models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return models.User{}, translate(err)
	}
	if !user.IsActive || user.Role != models.UserRoleUser {
		return models.User{}, apperr.New(apperr.KindNotFound, apperr.KeyUserNotFound)
	}
	return user, nil
}

func (s *UserService) Me(ctx context.Context, actor models.User) (models.User, error) {
	user, err := s.users.GetByID(ctx, actor.ID)
	return user, translate(err)
}

func (s *UserService) UpdateMe(ctx context.Context, actor models.User, update models.ProfileUpdate) (models.User, error) {
	if !isAdmin(actor) {
		update.Role = nil
	}
	if update.Role != nil && !update.Role.Valid() {
		return models.User{}, apperr.New(apperr.KindInvalidInput, apperr.KeyValidation)
	}
	user, err := s.users.UpdateProfile(ctx, actor.ID, update)
	return user, translate(err)
}

func (s *UserService) Update(ctx context.Context, actor models.User, username string, update models.ProfileUpdate) (models.User, error) {
	if err := requireRole(actor, models.UserRoleAdmin); err != nil {
		return models.User{}, err
	}
	if update.Role != nil && !update.Role.Valid() {
		return models.User{}, apperr.New(apperr.KindInvalidInput, apperr.KeyValidation)
	}

	target, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return models.User{}, translate(err)
	}
	user, err := s.users.UpdateProfile(ctx, target.ID, update)
	return user, translate(err)
}

func (s *UserService) UpdateSettings(ctx context.Context, actor models.User, update models.SettingsUpdate) (models.User, error) {
	user, err := s.users.UpdateSettings(ctx, actor.ID, update)
	return user, translate(err)
}

func (s *UserService) Followers(ctx context.Context, username string, params query.Params) (query.Page[models.User], error) {
	target, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return query.Page[models.User]{}, translate(err)
	}
	page, err := s.users.ListFollowers(ctx, target.ID, params)
	if err != nil {
		return query.Page[models.User]{}, translate(err)
	}
	return page, nil
}

func (s *UserService) Following(ctx context.Context, username string, params query.Params) (query.Page[models.User], error) {
	target, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return query.Page[models.User]{}, translate(err)
	}
	page, err := s.users.ListFollowing(ctx, target.ID, params)
	if err != nil {
		return query.Page[models.User]{}, translate(err)
	}
	return page, nil
}

// Deactivate hides the account and its posts until the next login.
func (s *UserService) Deactivate(ctx context.Context, actor models.User) error {
	if err := s.users.SetActive(ctx, actor.ID, false); err != nil {
		return translate(err)
	}
	s.log.Info().Str("user_id", actor.ID).Msg("account deactivated")
	return nil
}

func (s *UserService) DeleteMe(ctx context.Context, actor models.User) error {
	if err := s.users.Delete(ctx, actor.ID); err != nil {
		return translate(err)
	}
	s.log.Info().Str("user_id", actor.ID).Msg("account deleted by owner")
	return nil
}

func (s *UserService) Delete(ctx context.Context, actor models.User, username string) error {
	if err := requireRole(actor, models.UserRoleAdmin); err != nil {
		return err
	}
	target, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return translate(err)
	}
	if err := s.users.Delete(ctx, target.ID); err != nil {
		return translate(err)
	}
	s.log.Info().Str("user_id", target.ID).Str("admin_id", actor.ID).Msg("account deleted")
	return nil
}

// DeleteAll removes every account with the user role. Admin accounts stay.
func (s *UserService) DeleteAll(ctx context.Context, actor models.User) (int64, error) {
	if err := requireRole(actor, models.UserRoleAdmin); err != nil {
		return 0, err
	}
	deleted, err := s.users.DeleteAllUsers(ctx)
	if err != nil {
		return 0, translate(err)
	}
	s.log.Warn().Int64("deleted", deleted).Str("admin_id", actor.ID).Msg("all user accounts deleted")
	return deleted, nil
}
