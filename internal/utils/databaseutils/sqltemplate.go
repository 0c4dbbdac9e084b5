package databaseutils

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

type SQLTemplate struct {
	DB      *sqlx.DB
	Timeout time.Duration

	log     *slog.Logger
	metrics *queryMetrics

	// Queries slower than this are logged at warning level.
	SlowQueryThreshold time.Duration
}

func NewSQLTemplate(db *sqlx.DB, timeout time.Duration, log *slog.Logger) *SQLTemplate {
	return &SQLTemplate{
		DB:                 db,
		Timeout:            timeout,
		log:                log,
		metrics:            initQueryMetrics(),
		SlowQueryThreshold: 200 * time.Millisecond,
	}
}

// ExecuteQuery runs a query and extracts every returned row with the extractor.
// If the context carries an active transaction the query runs inside it.
func ExecuteQuery[T any](sqlTemplate *SQLTemplate, ctx context.Context, query string, extractor func(rows *sql.Rows) (T, error), args ...any) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, sqlTemplate.Timeout)
	defer cancel()

	executor := GetSQLExecutor(ctx, sqlTemplate.DB)

	start := time.Now()
	rows, err := executor.QueryContext(ctx, query, args...)
	sqlTemplate.observe(ctx, query, start, err)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []T
	for rows.Next() {
		t, err := extractor(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// ExecuteSingleQuery runs a query that is expected to return exactly one row.
// It returns sql.ErrNoRows when the query matched nothing.
func ExecuteSingleQuery[T any](sqlTemplate *SQLTemplate, ctx context.Context, query string, extractor func(rows *sql.Rows) (T, error), args ...any) (T, error) {
	var zero T

	ctx, cancel := context.WithTimeout(ctx, sqlTemplate.Timeout)
	defer cancel()

	executor := GetSQLExecutor(ctx, sqlTemplate.DB)

	start := time.Now()
	rows, err := executor.QueryContext(ctx, query, args...)
	sqlTemplate.observe(ctx, query, start, err)
	if err != nil {
		return zero, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return zero, err
		}
		return zero, sql.ErrNoRows
	}

	result, err := extractor(rows)
	if err != nil {
		return zero, err
	}
	if err := rows.Err(); err != nil {
		return zero, err
	}

	return result, nil
}

// ExecuteUpdate runs a statement that returns no rows and reports how many
// rows were affected.
func ExecuteUpdate(sqlTemplate *SQLTemplate, ctx context.Context, query string, args ...any) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, sqlTemplate.Timeout)
	defer cancel()

	executor := GetSQLExecutor(ctx, sqlTemplate.DB)

	start := time.Now()
	result, err := executor.ExecContext(ctx, query, args...)
	sqlTemplate.observe(ctx, query, start, err)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
