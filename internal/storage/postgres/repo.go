// Package postgres implements a Postgres repository using pgx v5. Bulk
// appends go through the COPY protocol, which is atomic per call: a unique
// violation aborts the COPY and nothing from the batch lands, matching the
// all-or-nothing Append contract the conflict retry relies on.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"arxivetl/internal/storage"
)

// uniqueViolation is the Postgres SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// Repository is a Postgres-backed implementation of storage.Repository.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository and returns a close function for
// cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, nil, fmt.Errorf("postgres: DSN must not be empty")
	}
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("postgres: pgxpool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("postgres: ping: %w", err)
	}
	closeFn := func() { pool.Close() }
	return &Repository{pool: pool}, closeFn, nil
}

// Append bulk-inserts rows into table via COPY. A unique violation is
// reported wrapped in storage.ErrConflict with nothing inserted.
func (r *Repository) Append(
	ctx context.Context,
	table string,
	columns []string,
	rows [][]any,
) (int64, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("postgres: Append: columns must not be empty")
	}
	if len(rows) == 0 {
		return 0, nil
	}

	n, err := r.pool.CopyFrom(ctx, pgIdentifier(table), columns, pgx.CopyFromRows(rows))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, fmt.Errorf("postgres: copy into %s: %w: %v", table, storage.ErrConflict, err)
		}
		return 0, fmt.Errorf("postgres: copy into %s: %w", table, err)
	}
	return n, nil
}

// SelectKeys reads every value of column from table, normalized to strings.
func (r *Repository) SelectKeys(ctx context.Context, table, column string) (map[string]struct{}, error) {
	q := fmt.Sprintf("SELECT %s FROM %s",
		pgIdentifier(column).Sanitize(), pgIdentifier(table).Sanitize())
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("postgres: select keys: %w", err)
	}
	defer rows.Close()

	keys := make(map[string]struct{})
	for rows.Next() {
		var v any
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("postgres: scan key: %w", err)
		}
		keys[storage.KeyString(v)] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate keys: %w", err)
	}
	return keys, nil
}

// Exec executes an arbitrary SQL statement (typically DDL).
func (r *Repository) Exec(ctx context.Context, sqlStmt string) error {
	if strings.TrimSpace(sqlStmt) == "" {
		return nil
	}
	if _, err := r.pool.Exec(ctx, sqlStmt); err != nil {
		return fmt.Errorf("postgres: exec: %w", err)
	}
	return nil
}

// pgIdentifier splits a possibly dotted name ("public.documents") into a
// pgx.Identifier so each segment is quoted independently.
func pgIdentifier(name string) pgx.Identifier {
	parts := strings.Split(name, ".")
	id := make(pgx.Identifier, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			id = append(id, p)
		}
	}
	return id
}
