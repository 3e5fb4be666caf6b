// This file wires the Postgres backend into the storage factory;
// registration happens in init and the backend is selected by
// storage.Config.Kind.
package postgres

import (
	"context"

	"arxivetl/internal/schema"
	"arxivetl/internal/storage"
)

// newRepository is a test hook that points to NewRepository by default.
var newRepository = NewRepository

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
	storage.Register("postgres", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		r, closeFn, err := newRepository(ctx, Config{DSN: cfg.DSN})
		if err != nil {
			return nil, err
		}
		return &wrappedRepo{Repository: r, closeFn: closeFn}, nil
	})

	storage.RegisterDDL("postgres", func(ctx context.Context, repo storage.Repository) error {
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
