package persistence

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/notion-blog/internal/domain/searchlog"
	"github.com/khoahotran/notion-blog/pkg/apperror"
	"github.com/khoahotran/notion-blog/pkg/logger"
)

type postgresSearchLogRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresSearchLogRepo(db *pgxpool.Pool, logger logger.Logger) searchlog.Repository {
	return &postgresSearchLogRepo{db: db, logger: logger}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var searchLogColumns = []string{
	"id", "query", "ancestor_id", "strategy", "outcome", "total", "duration_ms", "created_at",
}

func (r *postgresSearchLogRepo) Save(ctx context.Context, e *searchlog.Entry) error {
	sql, args, err := psql.Insert("search_logs").
		Columns(searchLogColumns...).
		Values(e.ID, e.Query, e.AncestorID, e.Strategy, string(e.Outcome), e.Total, e.DurationMS, e.CreatedAt).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build insert search log query", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return apperror.NewInternal("failed to insert search log", err)
	}
	return nil
}

func (r *postgresSearchLogRepo) ListRecent(ctx context.Context, limit int) ([]*searchlog.Entry, error) {
	sql, args, err := psql.Select(searchLogColumns...).
		From("search_logs").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list search logs query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query search logs", err)
	}
	return scanSearchLogs(rows)
}

func scanSearchLogs(rows pgx.Rows) ([]*searchlog.Entry, error) {
	defer rows.Close()

	entries := make([]*searchlog.Entry, 0)
	for rows.Next() {
		e := &searchlog.Entry{}
		var outcome string
		if err := rows.Scan(
			&e.ID, &e.Query, &e.AncestorID, &e.Strategy,
			&outcome, &e.Total, &e.DurationMS, &e.CreatedAt,
		); err != nil {
			return nil, apperror.NewInternal("failed to scan search log", err)
		}
		e.Outcome = searchlog.Outcome(outcome)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating search logs", err)
	}
	return entries, nil
}
