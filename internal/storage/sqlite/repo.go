// Package sqlite implements a SQLite-backed storage.Repository using
// database/sql. Batched INSERTs run inside a transaction; SQLite has no bulk
// load primitive like Postgres COPY, but a prepared statement in a single
// transaction keeps throughput acceptable for the metadata dump's volume.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"arxivetl/internal/storage"
)

// Repository is a SQLite-backed implementation of storage.Repository.
type Repository struct {
	db *sql.DB
}

// NewRepository opens a SQLite connection for the given DSN and returns a
// Repository plus a close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, nil, fmt.Errorf("sqlite: DSN must not be empty")
	}

	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("sqlite: open: %w", err)
	}

	// There is exactly one writer; a single connection sidesteps
	// SQLITE_BUSY and keeps ":memory:" DSNs pointing at one database.
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	// Enable foreign keys; categories.arxiv_id references documents.id.
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("sqlite: enable foreign keys: %w", err)
	}

	closeFn := func() { db.Close() }
	return &Repository{db: db}, closeFn, nil
}

// Append inserts the given rows into table using a single transaction and a
// prepared INSERT statement. A constraint violation rolls the whole batch
// back and is reported wrapped in storage.ErrConflict.
func (r *Repository) Append(
	ctx context.Context,
	table string,
	columns []string,
	rows [][]any,
) (int64, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("sqlite: Append: columns must not be empty")
	}
	if len(rows) == 0 {
		return 0, nil
	}

	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = quoteIdent(c)
		placeholders[i] = "?"
	}
	stmtSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite: begin tx: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, stmtSQL)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("sqlite: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if len(row) != len(columns) {
			_ = tx.Rollback()
			return 0, fmt.Errorf("sqlite: Append: row length %d != columns length %d", len(row), len(columns))
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			_ = tx.Rollback()
			if isConstraintErr(err) {
				return 0, fmt.Errorf("sqlite: insert into %s: %w: %v", table, storage.ErrConflict, err)
			}
			return 0, fmt.Errorf("sqlite: insert into %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("sqlite: commit: %w", err)
	}
	return int64(len(rows)), nil
}

// SelectKeys reads every value of column from table, normalized to strings.
func (r *Repository) SelectKeys(ctx context.Context, table, column string) (map[string]struct{}, error) {
	q := fmt.Sprintf("SELECT %s FROM %s", quoteIdent(column), quoteIdent(table))
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("sqlite: select keys: %w", err)
	}
	defer rows.Close()

	keys := make(map[string]struct{})
	for rows.Next() {
		var v any
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("sqlite: scan key: %w", err)
		}
		keys[storage.KeyString(v)] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate keys: %w", err)
	}
	return keys, nil
}

// Exec executes an arbitrary SQL statement (typically DDL).
func (r *Repository) Exec(ctx context.Context, sqlStmt string) error {
	if strings.TrimSpace(sqlStmt) == "" {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, sqlStmt); err != nil {
		return fmt.Errorf("sqlite: exec: %w", err)
	}
	return nil
}

// isConstraintErr reports whether err is any SQLITE_CONSTRAINT variant
// (primary key, unique, foreign key).
func isConstraintErr(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}
	return false
}

func quoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}
