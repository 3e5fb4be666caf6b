// Package transform implements the per-batch reshaping step of the load:
// duplicate suppression, normalization of the space-separated categories
// field into child-table rows, and removal of fields that are not modeled.
//
// Apply is a pure function. The cross-batch state it depends on (the set of
// already-seen document ids and the next category surrogate key) is passed
// in and handed back updated, so the step can be unit tested in isolation
// and the run driver stays the single owner of mutable run state.
package transform

import (
	"strings"

	"arxivetl/internal/arxiv"
)

// Result is the outcome of transforming one input batch.
type Result struct {
	// Documents holds one row per surviving record, aligned with
	// arxiv.DocumentColumns.
	Documents [][]any

	// Categories holds one row per (surviving record, category tag) pair,
	// aligned with arxiv.CategoryColumns. Surrogate ids are assigned
	// sequentially in input order.
	Categories [][]any

	// NewIDs lists the surviving records' ids in input order. The caller
	// merges these into its seen-set after the batch lands.
	NewIDs []string

	// NextCategoryID is the first unused surrogate key after this batch:
	// the input offset advanced by len(Categories).
	NextCategoryID int64
}

// Apply filters batch against seen, splits each survivor's categories field
// on whitespace into child rows keyed by sequential surrogate ids starting
// at nextCategoryID, and builds document rows without the categories,
// versions and authors_parsed fields.
//
// Records whose id is already in seen are dropped, as are repeats of an id
// within the same batch; the seen map itself is never mutated. An empty
// surviving batch yields empty outputs and an unchanged offset.
func Apply(batch []arxiv.Record, seen map[string]struct{}, nextCategoryID int64) Result {
	res := Result{NextCategoryID: nextCategoryID}
	inBatch := make(map[string]struct{}, len(batch))

	for _, rec := range batch {
		if _, dup := seen[rec.ID]; dup {
			continue
		}
		if _, dup := inBatch[rec.ID]; dup {
			continue
		}
		inBatch[rec.ID] = struct{}{}

		res.Documents = append(res.Documents, rec.DocumentRow())
		res.NewIDs = append(res.NewIDs, rec.ID)

		for _, tag := range strings.Fields(rec.Categories) {
			res.Categories = append(res.Categories, []any{res.NextCategoryID, rec.ID, tag})
			res.NextCategoryID++
		}
	}
	return res
}
