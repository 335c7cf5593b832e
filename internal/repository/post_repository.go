package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ethraa/internal/database"
	"ethraa/internal/models"
	"ethraa/internal/query"
)

const postColumns = `
	p.id, p.user_id, p.quote, p.quote_for, p.is_public, p.is_user_active,
	ARRAY(SELECT r.user_id FROM post_reactions r WHERE r.post_id = p.id AND r.kind = 'like' ORDER BY r.created_at, r.user_id),
	ARRAY(SELECT r.user_id FROM post_reactions r WHERE r.post_id = p.id AND r.kind = 'dislike' ORDER BY r.created_at, r.user_id),
	u.name, u.username, u.avatar,
	p.created_at, p.updated_at`

const postFrom = `FROM posts p JOIN users u ON u.id = p.user_id`

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

func scanPost(row pgx.Row) (models.Post, error) {
	var post models.Post
	if err := row.Scan(
		&post.ID,
		&post.UserID,
		&post.Quote,
		&post.QuoteFor,
		&post.IsPublic,
		&post.IsUserActive,
		&post.Likes,
		&post.Dislikes,
		&post.Author.Name,
		&post.Author.Username,
		&post.Author.Avatar,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Post{}, ErrPostNotFound
		}
		return models.Post{}, err
	}
	post.Author.ID = post.UserID
	return post, nil
}

func getPost(ctx context.Context, db database.DBTX, id string) (models.Post, error) {
	return scanPost(db.QueryRow(ctx, "SELECT "+postColumns+" "+postFrom+" WHERE p.id = $1", id))
}

// Create stores the post and bumps the author's quote counter atomically.
func (r *PostRepository) Create(ctx context.Context, post models.Post) (models.Post, error) {
	var created models.Post
	err := database.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		const insert = `
			INSERT INTO posts (id, user_id, quote, quote_for, is_public, is_user_active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		`
		if _, err := tx.Exec(ctx, insert,
			post.ID,
			post.UserID,
			post.Quote,
			post.QuoteFor,
			post.IsPublic,
			post.IsUserActive,
		); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `UPDATE users SET quote_count = quote_count + 1 WHERE id = $1`, post.UserID); err != nil {
			return err
		}

		var err error
		created, err = getPost(ctx, tx, post.ID)
		return err
	})
	return created, err
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (models.Post, error) {
	return getPost(ctx, r.pool, id)
}

func (r *PostRepository) Update(ctx context.Context, id string, update models.PostUpdate) (models.Post, error) {
	const query = `
		UPDATE posts
		SET quote = COALESCE($2, quote),
		    quote_for = COALESCE($3, quote_for),
		    is_public = COALESCE($4, is_public),
		    updated_at = NOW()
		WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query, id, update.Quote, update.QuoteFor, update.IsPublic)
	if err != nil {
		return models.Post{}, err
	}
	if cmd.RowsAffected() == 0 {
		return models.Post{}, ErrPostNotFound
	}
	return getPost(ctx, r.pool, id)
}

// Delete removes the post and decrements the author's quote counter.
// Reactions and bookmarks go with it through the foreign keys.
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	return database.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		var userID string
		err := tx.QueryRow(ctx, `DELETE FROM posts WHERE id = $1 RETURNING user_id`, id).Scan(&userID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrPostNotFound
			}
			return err
		}
		_, err = tx.Exec(ctx, `UPDATE users SET quote_count = GREATEST(quote_count - 1, 0) WHERE id = $1`, userID)
		return err
	})
}

func (r *PostRepository) DeleteAll(ctx context.Context) (int64, error) {
	var deleted int64
	err := database.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		cmd, err := tx.Exec(ctx, `DELETE FROM posts`)
		if err != nil {
			return err
		}
		deleted = cmd.RowsAffected()
		_, err = tx.Exec(ctx, `UPDATE users SET quote_count = 0 WHERE quote_count <> 0`)
		return err
	})
	return deleted, err
}

func (r *PostRepository) List(ctx context.Context, scope models.PostScope, params query.Params) (query.Page[models.Post], error) {
	q := query.New(PostDomain)
	if scope.UserID != "" {
		q.Where("p.user_id = ?", scope.UserID)
	}
	if scope.FollowedBy != "" {
		q.Where("p.user_id IN (SELECT f.followee_id FROM follows f WHERE f.follower_id = ?)", scope.FollowedBy)
	}
	if scope.VisibleOnly {
		q.Where("p.is_public AND p.is_user_active")
	}
	if scope.AuthorRoleUser {
		q.Where("u.role = ?", string(models.UserRoleUser))
	}
	q.Apply(params)
	return listPage(ctx, r.pool, q, params, postColumns, postFrom, scanPost)
}

// ToggleReaction applies a like or dislike toggle while holding the post row
// lock. Reacting with the kind already present removes it; reacting with the
// other kind replaces it, so an account never holds both.
func (r *PostRepository) ToggleReaction(ctx context.Context, postID, userID string, kind models.ReactionKind) (models.Post, error) {
	var post models.Post
	err := database.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		var isPublic bool
		err := tx.QueryRow(ctx, `SELECT is_public FROM posts WHERE id = $1 FOR UPDATE`, postID).Scan(&isPublic)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrPostNotFound
			}
			return err
		}
		if !isPublic {
			return ErrPostUnpublished
		}

		var existing string
		err = tx.QueryRow(ctx,
			`SELECT kind FROM post_reactions WHERE post_id = $1 AND user_id = $2`,
			postID, userID,
		).Scan(&existing)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		if models.ReactionKind(existing) == kind {
			if _, err := tx.Exec(ctx,
				`DELETE FROM post_reactions WHERE post_id = $1 AND user_id = $2`,
				postID, userID,
			); err != nil {
				return err
			}
		} else {
			if _, err := tx.Exec(ctx, `
				INSERT INTO post_reactions (post_id, user_id, kind, created_at)
				VALUES ($1, $2, $3, NOW())
				ON CONFLICT (post_id, user_id) DO UPDATE SET kind = EXCLUDED.kind, created_at = NOW()
			`, postID, userID, string(kind)); err != nil {
				return err
			}
		}

		post, err = getPost(ctx, tx, postID)
		return err
	})
	return post, err
}
