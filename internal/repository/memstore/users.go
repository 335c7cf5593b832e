package memstore

import (
	"context"
	"slices"
	"strings"
	"time"

	"ethraa/internal/models"
	"ethraa/internal/query"
	"ethraa/internal/repository"
)

type Users struct {
	s *Store
}

func (r Users) Create(_ context.Context, user models.User) (models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.ID == user.ID || existing.Email == user.Email || sameUsername(existing.Username, user.Username) {
			return models.User{}, repository.ErrDuplicate
		}
	}
	now := r.s.now()
	user.CreatedAt, user.UpdatedAt = now, now
	user.PasswordHash = slices.Clone(user.PasswordHash)
	r.s.users[user.ID] = user
	u, _ := r.s.user(user.ID)
	return u, nil
}

func (r Users) GetByID(_ context.Context, id string) (models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.user(id)
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (r Users) FindByUsername(_ context.Context, username string) (models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.findUser(func(u models.User) bool { return sameUsername(u.Username, username) })
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (r Users) FindByIdentifier(_ context.Context, identifier string) (models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	email := strings.ToLower(identifier)
	u, ok := r.s.findUser(func(u models.User) bool {
		return sameUsername(u.Username, identifier) || u.Email == email
	})
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

// update applies fn to the stored account and returns the result.
func (r Users) update(id string, fn func(u *models.User)) (models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	fn(&u)
	u.UpdatedAt = r.s.now()
	r.s.users[id] = u
	out, _ := r.s.user(id)
	return out, nil
}

func (r Users) SetActive(_ context.Context, id string, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.IsActive = active
	u.UpdatedAt = r.s.now()
	r.s.users[id] = u

	for postID, p := range r.s.posts {
		if p.UserID == id {
			p.IsUserActive = active
			r.s.posts[postID] = p
		}
	}
	return nil
}

func setPending(u *models.User, purpose models.TokenPurpose, token *models.PendingToken) {
	if purpose == models.TokenPurposePasswordReset {
		u.PasswordReset = token
		return
	}
	u.AccountVerification = token
}

func (r Users) SetSecretToken(_ context.Context, id string, purpose models.TokenPurpose, digest string, expiresAt time.Time) error {
	_, err := r.update(id, func(u *models.User) {
		setPending(u, purpose, &models.PendingToken{Digest: digest, ExpiresAt: expiresAt})
	})
	return err
}

func (r Users) ClearSecretToken(_ context.Context, id string, purpose models.TokenPurpose, digest string) error {
	_, err := r.update(id, func(u *models.User) {
		if pending := u.PendingToken(purpose); pending != nil && pending.Digest == digest {
			setPending(u, purpose, nil)
		}
	})
	return err
}

// consume clears the pending token matching digest that is still valid at
// now and applies fn to its account.
func (r Users) consume(purpose models.TokenPurpose, digest string, now time.Time, fn func(u *models.User)) (models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, u := range r.s.users {
		pending := u.PendingToken(purpose)
		if pending == nil || pending.Digest != digest || !pending.ExpiresAt.After(now) {
			continue
		}
		setPending(&u, purpose, nil)
		fn(&u)
		u.UpdatedAt = r.s.now()
		r.s.users[id] = u
		out, _ := r.s.user(id)
		return out, nil
	}
	return models.User{}, repository.ErrTokenNotFound
}

func (r Users) ResetPasswordWithToken(_ context.Context, digest string, now time.Time, passwordHash []byte) (models.User, error) {
	return r.consume(models.TokenPurposePasswordReset, digest, now, func(u *models.User) {
		u.PasswordHash = slices.Clone(passwordHash)
	})
}

func (r Users) ActivateWithToken(_ context.Context, digest string, now time.Time) (models.User, error) {
	return r.consume(models.TokenPurposeAccountVerification, digest, now, func(u *models.User) {
		u.IsActiveAccount = true
	})
}

func (r Users) UpdatePassword(_ context.Context, id string, passwordHash []byte) error {
	_, err := r.update(id, func(u *models.User) { u.PasswordHash = slices.Clone(passwordHash) })
	return err
}

func (r Users) UpdateProfile(_ context.Context, id string, update models.ProfileUpdate) (models.User, error) {
	return r.update(id, func(u *models.User) {
		if update.Name != nil {
			u.Name = *update.Name
		}
		if update.Bio != nil {
			u.Bio = *update.Bio
		}
		if update.Facebook != nil {
			u.Facebook = *update.Facebook
		}
		if update.Twitter != nil {
			u.Twitter = *update.Twitter
		}
		if update.Role != nil {
			u.Role = *update.Role
		}
	})
}

func (r Users) UpdateSettings(_ context.Context, id string, update models.SettingsUpdate) (models.User, error) {
	return r.update(id, func(u *models.User) {
		if update.IsDarkMode != nil {
			u.IsDarkMode = *update.IsDarkMode
		}
		if update.Language != nil {
			u.Language = *update.Language
		}
	})
}

func (r Users) SetAvatar(_ context.Context, id string, avatar string) (models.User, error) {
	return r.update(id, func(u *models.User) { u.Avatar = avatar })
}

func (r Users) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !r.s.deleteUser(id) {
		return repository.ErrUserNotFound
	}
	return nil
}

func (r Users) DeleteAllUsers(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var deleted int64
	for id, u := range r.s.users {
		if u.Role == models.UserRoleUser && r.s.deleteUser(id) {
			deleted++
		}
	}
	return deleted, nil
}

func (r Users) list(ids []string, keep func(models.User) bool, params query.Params) query.Page[models.User] {
	items := r.s.usersByID(ids)
	if keep != nil {
		items = slices.DeleteFunc(items, func(u models.User) bool { return !keep(u) })
	}
	return query.Slice(items, repository.UserDomain, params, userField)
}

func (r Users) allIDs() []string {
	ids := make([]string, 0, len(r.s.users))
	for id := range r.s.users {
		ids = append(ids, id)
	}
	return ids
}

func (r Users) List(_ context.Context, scope models.UserScope, params query.Params) (query.Page[models.User], error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.list(r.allIDs(), func(u models.User) bool {
		if scope.ActiveUsersOnly && !listedUser(u) {
			return false
		}
		return scope.ExcludeID == "" || u.ID != scope.ExcludeID
	}, params), nil
}

func (r Users) ListFollowers(_ context.Context, userID string, params query.Params) (query.Page[models.User], error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.list(r.s.follows.Followers(userID), listedUser, params), nil
}

func (r Users) ListFollowing(_ context.Context, userID string, params query.Params) (query.Page[models.User], error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.list(r.s.follows.Following(userID), listedUser, params), nil
}

func (r Users) ListSuggestions(_ context.Context, userID string, params query.Params) (query.Page[models.User], error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.list(r.s.follows.SuggestFromFollowing(userID), listedUser, params), nil
}

// listedUser matches models.UserScope{ActiveUsersOnly: true}.
func listedUser(u models.User) bool {
	return u.IsActive && u.Role == models.UserRoleUser
}

func userField(u models.User, field string) any {
	switch field {
	case "id":
		return u.ID
	case "name":
		return u.Name
	case "username":
		return u.Username
	case "bio":
		return u.Bio
	case "role":
		return string(u.Role)
	case "isActive":
		return u.IsActive
	case "isActiveAccount":
		return u.IsActiveAccount
	case "language":
		return u.Language
	case "quoteCount":
		return u.QuoteCount
	case "followersCount":
		return u.FollowersCount
	case "followingCount":
		return u.FollowingCount
	case "createdAt":
		return u.CreatedAt
	case "updatedAt":
		return u.UpdatedAt
	}
	return nil
}
