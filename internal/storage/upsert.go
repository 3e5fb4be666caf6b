package storage

import (
	"context"
	"errors"
	"fmt"
)

// AppendDedup appends rows to table, recovering once from a primary key
// conflict: it re-queries the keys already present, drops conflicting rows
// from the batch, and retries with the remainder. A conflict on the retry
// propagates unchanged, so a batch is attempted at most twice.
//
// This is what makes re-runs against a partially populated store idempotent:
// a key inserted by an earlier append (same run or a previous one) is never
// inserted again.
//
// keyColumn names the primary key column and must appear in columns.
func AppendDedup(
	ctx context.Context,
	repo Repository,
	table string,
	columns []string,
	keyColumn string,
	rows [][]any,
) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	keyIdx := -1
	for i, c := range columns {
		if c == keyColumn {
			keyIdx = i
			break
		}
	}
	if keyIdx < 0 {
		return 0, fmt.Errorf("storage: key column %q not in columns %v", keyColumn, columns)
	}

	n, err := repo.Append(ctx, table, columns, rows)
	if err == nil || !errors.Is(err, ErrConflict) {
		return n, err
	}

	existing, qerr := repo.SelectKeys(ctx, table, keyColumn)
	if qerr != nil {
		return 0, fmt.Errorf("storage: query existing keys of %s: %w", table, qerr)
	}

	fresh := rows[:0:0]
	for _, row := range rows {
		if _, dup := existing[KeyString(row[keyIdx])]; dup {
			continue
		}
		fresh = append(fresh, row)
	}
	if len(fresh) == 0 {
		return 0, nil
	}

	m, err := repo.Append(ctx, table, columns, fresh)
	if err != nil {
		return m, fmt.Errorf("storage: retry append to %s: %w", table, err)
	}
	return m, nil
}
