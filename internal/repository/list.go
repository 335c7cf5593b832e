package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"ethraa/internal/database"
	"ethraa/internal/query"
)

// listPage counts the rows matching q, then fetches the requested page.
// from is the FROM/JOIN clause shared by both statements.
func listPage[T any](
	ctx context.Context,
	db database.DBTX,
	q *query.Query,
	p query.Params,
	columns string,
	from string,
	scan func(pgx.Row) (T, error),
) (query.Page[T], error) {
	countSQL, countArgs := q.Count(from)
	var total int
	if err := db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return query.Page[T]{}, fmt.Errorf("count: %w", err)
	}

	selectSQL, args := q.Select("SELECT " + columns + " " + from)
	rows, err := db.Query(ctx, selectSQL, args...)
	if err != nil {
		return query.Page[T]{}, fmt.Errorf("select: %w", err)
	}
	defer rows.Close()

	items := make([]T, 0, p.Normalize().Limit)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return query.Page[T]{}, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return query.Page[T]{}, err
	}

	return query.NewPage(items, total, p), nil
}
