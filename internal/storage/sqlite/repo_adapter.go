// This file wires the SQLite backend into the storage factory. Callers never
// import this package directly; registration happens in init and the backend
// is selected by storage.Config.Kind.
package sqlite

import (
	"context"

	"arxivetl/internal/schema"
	"arxivetl/internal/storage"
)

// newRepository is a test hook that points to NewRepository by default.
var newRepository = NewRepository

// wrappedRepo adapts *Repository to storage.Repository, adding a Close
// method backed by the cleanup function returned from NewRepository.
type wrappedRepo struct {
	*Repository
	closeFn func()
}

func (w *wrappedRepo) Close() {
	if w.closeFn != nil {
		w.closeFn()
	}
}

var _ storage.Repository = (*wrappedRepo)(nil)

func init() {
	storage.Register("sqlite", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		r, closeFn, err := newRepository(ctx, Config{DSN: cfg.DSN})
		if err != nil {
			return nil, err
		}
		return &wrappedRepo{Repository: r, closeFn: closeFn}, nil
	})

	storage.RegisterDDL("sqlite", func(ctx context.Context, repo storage.Repository) error {
		for _, t := range schema.Tables() {
			stmt, err := BuildCreateTableSQL(t)
			if err != nil {
				return err
			}
			if err := repo.Exec(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
}
