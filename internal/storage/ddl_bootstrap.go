package storage

import (
	"context"
	"fmt"
	"sync"
)

// DDLBootstrapper renders and applies the destination schema for one backend
// dialect via repo.Exec. The statements must be idempotent
// (CREATE TABLE IF NOT EXISTS) so that re-runs against an initialized store
// are no-ops.
type DDLBootstrapper func(ctx context.Context, repo Repository) error

var (
	ddlMu  sync.RWMutex
	ddlFns = map[string]DDLBootstrapper{}
)

// RegisterDDL registers (or replaces) a DDLBootstrapper for the given
// backend kind. Called from backend packages' init functions.
func RegisterDDL(kind string, fn DDLBootstrapper) {
	ddlMu.Lock()
	defer ddlMu.Unlock()
	ddlFns[kind] = fn
}

// EnsureSchema locates the bootstrapper for kind and invokes it against
// repo. Storage errors propagate unchanged beyond the wrapping here.
func EnsureSchema(ctx context.Context, kind string, repo Repository) error {
	ddlMu.RLock()
	fn, ok := ddlFns[kind]
	ddlMu.RUnlock()
	if !ok {
		return fmt.Errorf("storage: no DDL bootstrapper registered for kind %q", kind)
	}
	if err := fn(ctx, repo); err != nil {
		return fmt.Errorf("storage: ensure schema (%s): %w", kind, err)
	}
	return nil
}
