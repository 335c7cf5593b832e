package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ethraa/internal/database"
)

type ReconcileReport struct {
	UsersFixed    int64
	PostsResynced int64
}

// MaintenanceRepository repairs denormalized state and drops stale tokens.
type MaintenanceRepository struct {
	pool *pgxpool.Pool
}

func NewMaintenanceRepository(pool *pgxpool.Pool) *MaintenanceRepository {
	return &MaintenanceRepository{pool: pool}
}

func (r *MaintenanceRepository) PurgeExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	var purged int64
	err := database.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		cmd, err := tx.Exec(ctx, `
			UPDATE users
			SET password_reset_token = NULL, password_reset_token_expiration = NULL
			WHERE password_reset_token_expiration <= $1
		`, now)
		if err != nil {
			return err
		}
		purged += cmd.RowsAffected()

		cmd, err = tx.Exec(ctx, `
			UPDATE users
			SET account_verification_token = NULL, account_verification_token_expiration = NULL
			WHERE account_verification_token_expiration <= $1
		`, now)
		if err != nil {
			return err
		}
		purged += cmd.RowsAffected()
		return nil
	})
	return purged, err
}

// Reconcile recomputes follower, following and quote counters from the
// source tables and re-syncs post visibility with the author's active flag.
func (r *MaintenanceRepository) Reconcile(ctx context.Context) (ReconcileReport, error) {
	var report ReconcileReport
	err := database.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		cmd, err := tx.Exec(ctx, `
			WITH actual AS (
				SELECT u.id,
				       (SELECT COUNT(*) FROM follows f WHERE f.followee_id = u.id) AS followers,
				       (SELECT COUNT(*) FROM follows f WHERE f.follower_id = u.id) AS following,
				       (SELECT COUNT(*) FROM posts p WHERE p.user_id = u.id) AS quotes
				FROM users u
			)
			UPDATE users u
			SET followers_count = a.followers,
			    following_count = a.following,
			    quote_count = a.quotes
			FROM actual a
			WHERE a.id = u.id
			  AND (u.followers_count <> a.followers OR u.following_count <> a.following OR u.quote_count <> a.quotes)
		`)
		if err != nil {
			return err
		}
		report.UsersFixed = cmd.RowsAffected()

		cmd, err = tx.Exec(ctx, `
			UPDATE posts p
			SET is_user_active = u.is_active
			FROM users u
			WHERE u.id = p.user_id AND p.is_user_active <> u.is_active
		`)
		if err != nil {
			return err
		}
		report.PostsResynced = cmd.RowsAffected()
		return nil
	})
	return report, err
}
