// Package storage contains the storage-agnostic contracts of the loader: the
// Repository interface every backend implements, a registration-based
// factory so callers never import driver packages directly, and the
// conflict-aware append used to keep re-runs idempotent.
package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
)

// ErrConflict is wrapped by backends when a bulk append fails on a primary
// key or unique constraint. Callers test with errors.Is.
var ErrConflict = errors.New("primary key conflict")

// Config selects and configures a storage backend.
type Config struct {
	// Kind selects the backend implementation, e.g. "sqlite" or "postgres".
	Kind string

	// DSN is the backend connection string: a file path for SQLite, a
	// pgx connection string for Postgres.
	DSN string
}

// Repository is the minimal surface the run driver needs from a backend.
type Repository interface {
	// Append bulk-inserts rows (aligned with columns) into table. The whole
	// batch lands or none of it does; a constraint violation is reported
	// wrapped in ErrConflict with nothing inserted.
	Append(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)

	// SelectKeys returns the current values of the given column across the
	// whole table, normalized to strings via KeyString.
	SelectKeys(ctx context.Context, table, column string) (map[string]struct{}, error)

	// Exec runs an arbitrary statement, typically DDL.
	Exec(ctx context.Context, sql string) error

	// Close releases the underlying connection(s).
	Close()
}

// Factory constructs a Repository from a Config.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	regMu     sync.RWMutex
	factories = map[string]Factory{}
)

// Register installs (or replaces) the factory for a backend kind. It is
// called from backend packages' init functions.
func Register(kind string, fn Factory) {
	regMu.Lock()
	defer regMu.Unlock()
	factories[kind] = fn
}

// New builds a Repository for cfg.Kind, or reports the supported kinds when
// the requested one is unknown.
func New(ctx context.Context, cfg Config) (Repository, error) {
	regMu.RLock()
	fn, ok := factories[cfg.Kind]
	regMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: unsupported kind %q (have %v)", cfg.Kind, ListKinds())
	}
	return fn(ctx, cfg)
}

// ListKinds returns the registered backend kinds in sorted order.
func ListKinds() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	kinds := make([]string, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// KeyString normalizes a primary key value scanned from the database, or
// carried in a pending row, into a comparable string form. Drivers hand
// back TEXT keys as string or []byte and INTEGER keys as int64.
func KeyString(v any) string {
	switch k := v.(type) {
	case string:
		return k
	case []byte:
		return string(k)
	case int64:
		return strconv.FormatInt(k, 10)
	case int:
		return strconv.Itoa(k)
	case float64:
		return strconv.FormatInt(int64(k), 10)
	default:
		return fmt.Sprint(k)
	}
}
