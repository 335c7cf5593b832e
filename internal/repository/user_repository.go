package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ethraa/internal/database"
	"ethraa/internal/models"
	"ethraa/internal/query"
)

const userColumns = `
	u.id, u.name, u.username, u.email, u.password_hash, u.avatar, u.bio, u.facebook, u.twitter,
	u.role, u.is_active, u.is_active_account, u.is_dark_mode, u.language,
	u.quote_count, u.followers_count, u.following_count,
	u.password_reset_token, u.password_reset_token_expiration,
	u.account_verification_token, u.account_verification_token_expiration,
	u.created_at, u.updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (models.User, error) {
	return scanUserWith(row)
}

// scanUserWith scans userColumns followed by any extra selected columns.
func scanUserWith(row pgx.Row, extra ...any) (models.User, error) {
	var (
		user                        models.User
		resetDigest, verifyDigest   *string
		resetExpires, verifyExpires *time.Time
	)
	dest := []any{
		&user.ID,
		&user.Name,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Avatar,
		&user.Bio,
		&user.Facebook,
		&user.Twitter,
		&user.Role,
		&user.IsActive,
		&user.IsActiveAccount,
		&user.IsDarkMode,
		&user.Language,
		&user.QuoteCount,
		&user.FollowersCount,
		&user.FollowingCount,
		&resetDigest,
		&resetExpires,
		&verifyDigest,
		&verifyExpires,
		&user.CreatedAt,
		&user.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}

	if resetDigest != nil && resetExpires != nil {
		user.PasswordReset = &models.PendingToken{Digest: *resetDigest, ExpiresAt: *resetExpires}
	}
	if verifyDigest != nil && verifyExpires != nil {
		user.AccountVerification = &models.PendingToken{Digest: *verifyDigest, ExpiresAt: *verifyExpires}
	}
	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	const query = `
		INSERT INTO users (
			id, name, username, email, password_hash, avatar, role,
			is_active, is_active_account, language, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW()
		)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		user.ID,
		user.Name,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Avatar,
		user.Role,
		user.IsActive,
		user.IsActiveAccount,
		user.Language,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return models.User{}, ErrDuplicate
		}
		if database.IsCheckViolation(err) {
			return models.User{}, ErrConstraint
		}
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	return getUser(ctx, r.pool, "u.id = $1", id)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	return getUser(ctx, r.pool, "lower(u.username) = lower($1)", username)
}

// FindByIdentifier matches either the username or the email address.
func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (models.User, error) {
	return getUser(ctx, r.pool, "lower(u.username) = lower($1) OR u.email = lower($1)", identifier)
}

func getUser(ctx context.Context, db database.DBTX, cond string, arg any) (models.User, error) {
	query := "SELECT " + userColumns + " FROM users u WHERE " + cond + " LIMIT 1"
	return scanUser(db.QueryRow(ctx, query, arg))
}

// SetActive flips the soft-deactivation flag and mirrors it onto every post
// the account owns.
func (r *UserRepository) SetActive(ctx context.Context, id string, active bool) error {
	return database.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		cmd, err := tx.Exec(ctx, `UPDATE users SET is_active = $2, updated_at = NOW() WHERE id = $1`, id, active)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return ErrUserNotFound
		}
		_, err = tx.Exec(ctx, `UPDATE posts SET is_user_active = $2 WHERE user_id = $1 AND is_user_active <> $2`, id, active)
		return err
	})
}

func tokenColumns(purpose models.TokenPurpose) (string, string, error) {
	switch purpose {
	case models.TokenPurposePasswordReset:
		return "password_reset_token", "password_reset_token_expiration", nil
	case models.TokenPurposeAccountVerification:
		return "account_verification_token", "account_verification_token_expiration", nil
	}
	return "", "", fmt.Errorf("unknown token purpose %q", purpose)
}

func (r *UserRepository) SetSecretToken(ctx context.Context, id string, purpose models.TokenPurpose, digest string, expiresAt time.Time) error {
	tokenCol, expCol, err := tokenColumns(purpose)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE users SET %s = $2, %s = $3, updated_at = NOW() WHERE id = $1`, tokenCol, expCol)
	cmd, err := r.pool.Exec(ctx, query, id, digest, expiresAt)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ClearSecretToken removes a pending token only while it still holds digest,
// so a newer token issued concurrently survives.
func (r *UserRepository) ClearSecretToken(ctx context.Context, id string, purpose models.TokenPurpose, digest string) error {
	tokenCol, expCol, err := tokenColumns(purpose)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE users SET %s = NULL, %s = NULL, updated_at = NOW() WHERE id = $1 AND %s = $2`, tokenCol, expCol, tokenCol)
	_, err = r.pool.Exec(ctx, query, id, digest)
	return err
}

// ResetPasswordWithToken consumes a password reset token and stores the new
// hash in the same statement. A missing, mismatched or expired token yields
// ErrTokenNotFound; concurrent callers cannot both succeed.
func (r *UserRepository) ResetPasswordWithToken(ctx context.Context, digest string, now time.Time, passwordHash []byte) (models.User, error) {
	const query = `
		UPDATE users u
		SET password_hash = $3,
		    password_reset_token = NULL,
		    password_reset_token_expiration = NULL,
		    updated_at = NOW()
		WHERE u.password_reset_token = $1 AND u.password_reset_token_expiration > $2
		RETURNING ` + userColumns
	return consumeToken(r.pool.QueryRow(ctx, query, digest, now, passwordHash))
}

func (r *UserRepository) ActivateWithToken(ctx context.Context, digest string, now time.Time) (models.User, error) {
	const query = `
		UPDATE users u
		SET is_active_account = TRUE,
		    account_verification_token = NULL,
		    account_verification_token_expiration = NULL,
		    updated_at = NOW()
		WHERE u.account_verification_token = $1 AND u.account_verification_token_expiration > $2
		RETURNING ` + userColumns
	return consumeToken(r.pool.QueryRow(ctx, query, digest, now))
}

func consumeToken(row pgx.Row) (models.User, error) {
	user, err := scanUser(row)
	if errors.Is(err, ErrUserNotFound) {
		return models.User{}, ErrTokenNotFound
	}
	return user, err
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id string, passwordHash []byte) error {
	const query = `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id, passwordHash)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id string, update models.ProfileUpdate) (models.User, error) {
	const query = `
		UPDATE users u
		SET name = COALESCE($2, name),
		    bio = COALESCE($3, bio),
		    facebook = COALESCE($4, facebook),
		    twitter = COALESCE($5, twitter),
		    role = COALESCE($6, role),
		    updated_at = NOW()
		WHERE u.id = $1
		RETURNING ` + userColumns

	var role *string
	if update.Role != nil {
		v := string(*update.Role)
		role = &v
	}
	user, err := scanUser(r.pool.QueryRow(ctx, query, id, update.Name, update.Bio, update.Facebook, update.Twitter, role))
	if database.IsCheckViolation(err) {
		return models.User{}, ErrConstraint
	}
	return user, err
}

func (r *UserRepository) UpdateSettings(ctx context.Context, id string, update models.SettingsUpdate) (models.User, error) {
	const query = `
		UPDATE users u
		SET is_dark_mode = COALESCE($2, is_dark_mode),
		    language = COALESCE($3, language),
		    updated_at = NOW()
		WHERE u.id = $1
		RETURNING ` + userColumns
	return scanUser(r.pool.QueryRow(ctx, query, id, update.IsDarkMode, update.Language))
}

func (r *UserRepository) SetAvatar(ctx context.Context, id string, avatar string) (models.User, error) {
	const query = `
		UPDATE users u SET avatar = $2, updated_at = NOW()
		WHERE u.id = $1
		RETURNING ` + userColumns
	return scanUser(r.pool.QueryRow(ctx, query, id, avatar))
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return database.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := releaseFollowCounts(ctx, tx, id); err != nil {
			return err
		}
		cmd, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return ErrUserNotFound
		}
		return nil
	})
}

// DeleteAllUsers removes every account with the user role. Admins remain.
func (r *UserRepository) DeleteAllUsers(ctx context.Context) (int64, error) {
	var deleted int64
	err := database.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		cmd, err := tx.Exec(ctx, `DELETE FROM users WHERE role = 'user'`)
		if err != nil {
			return err
		}
		deleted = cmd.RowsAffected()
		_, err = tx.Exec(ctx, `
			UPDATE users u
			SET followers_count = (SELECT COUNT(*) FROM follows f WHERE f.followee_id = u.id),
			    following_count = (SELECT COUNT(*) FROM follows f WHERE f.follower_id = u.id)
		`)
		return err
	})
	return deleted, err
}

// releaseFollowCounts decrements the counters of accounts on the other end
// of every edge touching id before the cascade removes those edges.
func releaseFollowCounts(ctx context.Context, tx pgx.Tx, id string) error {
	if _, err := tx.Exec(ctx, `
		UPDATE users SET followers_count = GREATEST(followers_count - 1, 0)
		WHERE id IN (SELECT followee_id FROM follows WHERE follower_id = $1)
	`, id); err != nil {
		return err
	}
	_, err := tx.Exec(ctx, `
		UPDATE users SET following_count = GREATEST(following_count - 1, 0)
		WHERE id IN (SELECT follower_id FROM follows WHERE followee_id = $1)
	`, id)
	return err
}

func scopeUsers(q *query.Query, scope models.UserScope) *query.Query {
	if scope.ActiveUsersOnly {
		q.Where("u.is_active AND u.role = ?", string(models.UserRoleUser))
	}
	if scope.ExcludeID != "" {
		q.Where("u.id <> ?", scope.ExcludeID)
	}
	return q
}

func (r *UserRepository) List(ctx context.Context, scope models.UserScope, params query.Params) (query.Page[models.User], error) {
	q := scopeUsers(query.New(UserDomain), scope).Apply(params)
	return listPage(ctx, r.pool, q, params, userColumns, "FROM users u", scanUser)
}

// ListFollowers and ListFollowing only show active accounts with the user
// role, so deactivated accounts drop out of other people's lists.
func (r *UserRepository) ListFollowers(ctx context.Context, userID string, params query.Params) (query.Page[models.User], error) {
	q := scopeUsers(query.New(UserDomain), models.UserScope{ActiveUsersOnly: true}).
		Where("u.id IN (SELECT f.follower_id FROM follows f WHERE f.followee_id = ?)", userID).
		Apply(params)
	return listPage(ctx, r.pool, q, params, userColumns, "FROM users u", scanUser)
}

func (r *UserRepository) ListFollowing(ctx context.Context, userID string, params query.Params) (query.Page[models.User], error) {
	q := scopeUsers(query.New(UserDomain), models.UserScope{ActiveUsersOnly: true}).
		Where("u.id IN (SELECT f.followee_id FROM follows f WHERE f.follower_id = ?)", userID).
		Apply(params)
	return listPage(ctx, r.pool, q, params, userColumns, "FROM users u", scanUser)
}

// ListSuggestions lists followers of the accounts userID follows, excluding
// userID itself and accounts it already follows.
func (r *UserRepository) ListSuggestions(ctx context.Context, userID string, params query.Params) (query.Page[models.User], error) {
	q := scopeUsers(query.New(UserDomain), models.UserScope{ActiveUsersOnly: true, ExcludeID: userID}).
		Where(`u.id IN (
			SELECT f2.follower_id FROM follows f1
			JOIN follows f2 ON f2.followee_id = f1.followee_id
			WHERE f1.follower_id = ?
		)`, userID).
		Where("u.id NOT IN (SELECT f.followee_id FROM follows f WHERE f.follower_id = ?)", userID).
		Apply(params)
	return listPage(ctx, r.pool, q, params, userColumns, "FROM users u", scanUser)
}
