package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ethraa/internal/database"
)

type FollowRepository struct {
	pool *pgxpool.Pool
}

func NewFollowRepository(pool *pgxpool.Pool) *FollowRepository {
	return &FollowRepository{pool: pool}
}

// Toggle removes the follow edge when present and inserts it otherwise,
// keeping both accounts' counters in step within one transaction. It
// reports whether followerID follows followeeID afterwards.
func (r *FollowRepository) Toggle(ctx context.Context, followerID, followeeID string) (bool, error) {
	var following bool
	err := database.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		cmd, err := tx.Exec(ctx, `DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`, followerID, followeeID)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() > 0 {
			following = false
			return adjustFollowCounts(ctx, tx, followerID, followeeID, -1)
		}

		cmd, err = tx.Exec(ctx, `
			INSERT INTO follows (follower_id, followee_id, created_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT (follower_id, followee_id) DO NOTHING
		`, followerID, followeeID)
		if err != nil {
			return err
		}
		following = true
		if cmd.RowsAffected() == 0 {
			return nil
		}
		return adjustFollowCounts(ctx, tx, followerID, followeeID, 1)
	})
	return following, err
}

func adjustFollowCounts(ctx context.Context, tx pgx.Tx, followerID, followeeID string, delta int) error {
	if _, err := tx.Exec(ctx,
		`UPDATE users SET following_count = GREATEST(following_count + $2, 0) WHERE id = $1`,
		followerID, delta,
	); err != nil {
		return err
	}
	_, err := tx.Exec(ctx,
		`UPDATE users SET followers_count = GREATEST(followers_count + $2, 0) WHERE id = $1`,
		followeeID, delta,
	)
	return err
}

func (r *FollowRepository) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, followerID, followeeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
