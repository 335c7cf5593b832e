package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ethraa/internal/models"
)

type StatsRepository struct {
	pool *pgxpool.Pool
}

func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{pool: pool}
}

// TopLikedUsers ranks active accounts by the likes their posts collected.
func (r *StatsRepository) TopLikedUsers(ctx context.Context, limit int) ([]models.LikedUser, error) {
	const query = `
		SELECT ` + userColumns + `, t.total_likes
		FROM (
			SELECT p.user_id, COUNT(*) AS total_likes
			FROM post_reactions r
			JOIN posts p ON p.id = r.post_id
			WHERE r.kind = 'like'
			GROUP BY p.user_id
		) t
		JOIN users u ON u.id = t.user_id
		WHERE u.is_active AND t.total_likes > 0
		ORDER BY t.total_likes DESC, u.id
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ranked []models.LikedUser
	for rows.Next() {
		var total int
		user, err := scanUserWith(rows, &total)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, models.LikedUser{User: user, TotalLikes: total})
	}
	return ranked, rows.Err()
}

// TopLikedPosts ranks visible posts with at least one like.
func (r *StatsRepository) TopLikedPosts(ctx context.Context, limit int) ([]models.Post, error) {
	const query = `
		SELECT ` + postColumns + `
		` + postFrom + `
		WHERE p.is_public AND p.is_user_active
		  AND EXISTS (SELECT 1 FROM post_reactions r WHERE r.post_id = p.id AND r.kind = 'like')
		ORDER BY (SELECT COUNT(*) FROM post_reactions r WHERE r.post_id = p.id AND r.kind = 'like') DESC,
		         p.created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collect(rows, scanPost)
}

func collect[T any](rows pgx.Rows, scan func(pgx.Row) (T, error)) ([]T, error) {
	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
