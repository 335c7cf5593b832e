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

const bookmarkColumns = `b.id, b.user_id, b.post_id, b.created_at, ` + postColumns

const bookmarkFrom = `FROM bookmarks b JOIN posts p ON p.id = b.post_id JOIN users u ON u.id = p.user_id`

type BookmarkRepository struct {
	pool *pgxpool.Pool
}

func NewBookmarkRepository(pool *pgxpool.Pool) *BookmarkRepository {
	return &BookmarkRepository{pool: pool}
}

func scanBookmark(row pgx.Row) (models.Bookmark, error) {
	var (
		bookmark models.Bookmark
		post     models.Post
	)
	if err := row.Scan(
		&bookmark.ID,
		&bookmark.UserID,
		&bookmark.PostID,
		&bookmark.CreatedAt,
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
			return models.Bookmark{}, ErrBookmarkNotFound
		}
		return models.Bookmark{}, err
	}
	post.Author.ID = post.UserID
	bookmark.Post = &post
	return bookmark, nil
}

// Toggle deletes the (user, post) bookmark when present and creates it from
// bookmark otherwise. The post must exist and be visible. It reports whether
// the bookmark exists afterwards.
func (r *BookmarkRepository) Toggle(ctx context.Context, bookmark models.Bookmark) (bool, error) {
	var created bool
	err := database.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		var visible bool
		err := tx.QueryRow(ctx,
			`SELECT is_public AND is_user_active FROM posts WHERE id = $1`,
			bookmark.PostID,
		).Scan(&visible)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrPostNotFound
			}
			return err
		}
		if !visible {
			return ErrPostNotFound
		}

		cmd, err := tx.Exec(ctx,
			`DELETE FROM bookmarks WHERE user_id = $1 AND post_id = $2`,
			bookmark.UserID, bookmark.PostID,
		)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() > 0 {
			created = false
			return nil
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO bookmarks (id, user_id, post_id, created_at)
			VALUES ($1, $2, $3, NOW())
			ON CONFLICT (user_id, post_id) DO NOTHING
		`, bookmark.ID, bookmark.UserID, bookmark.PostID)
		created = true
		return err
	})
	return created, err
}

func (r *BookmarkRepository) GetByID(ctx context.Context, id string) (models.Bookmark, error) {
	return scanBookmark(r.pool.QueryRow(ctx, "SELECT "+bookmarkColumns+" "+bookmarkFrom+" WHERE b.id = $1", id))
}

func (r *BookmarkRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM bookmarks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrBookmarkNotFound
	}
	return nil
}

func (r *BookmarkRepository) DeleteAll(ctx context.Context) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM bookmarks`)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *BookmarkRepository) List(ctx context.Context, scope models.BookmarkScope, params query.Params) (query.Page[models.Bookmark], error) {
	q := query.New(BookmarkDomain)
	if scope.UserID != "" {
		q.Where("b.user_id = ?", scope.UserID)
	}
	if scope.VisibleOnly {
		q.Where("p.is_public AND p.is_user_active")
	}
	q.Apply(params)
	return listPage(ctx, r.pool, q, params, bookmarkColumns, bookmarkFrom, scanBookmark)
}
