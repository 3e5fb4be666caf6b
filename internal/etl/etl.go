// Package etl drives a full load run: schema bootstrap, line-count pre-scan,
// then one pass over the source in batches of the configured size, each
// batch transformed and appended to the destination.
//
// The run is single-threaded on purpose. There is exactly one writer, the
// per-batch work is dominated by the database round trip, and the only
// cross-batch state (the seen-id set and the category surrogate counter) is
// threaded through the transform step explicitly. Peak memory is one batch
// of decoded records plus the seen-id set, which grows with the number of
// unique documents.
package etl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"arxivetl/internal/arxiv"
	"arxivetl/internal/config"
	"arxivetl/internal/datasource"
	"arxivetl/internal/datasource/file"
	"arxivetl/internal/metrics"
	"arxivetl/internal/parser/ndjson"
	"arxivetl/internal/schema"
	"arxivetl/internal/storage"
	"arxivetl/internal/transform"
)

// Summary reports what a completed run did.
type Summary struct {
	// Lines is the pre-scan line count of the input.
	Lines int

	// Batches is the number of input batches processed.
	Batches int

	// Parsed counts records decoded from the input.
	Parsed int64

	// Documents and Categories count rows reported inserted by the backend.
	Documents  int64
	Categories int64

	// Duplicates counts records dropped by the in-run seen-set.
	Duplicates int64

	// Elapsed is the total wall-clock duration of the run.
	Elapsed time.Duration
}

// Run executes one load described by cfg against the configured backend.
// Any failure beyond the writer's single conflict retry is fatal and aborts
// the run; a re-run against the same destination replays safely because the
// conflict-handling append never double-inserts a key.
func Run(ctx context.Context, cfg config.Config) (Summary, error) {
	var sum Summary
	if cfg.BatchSize < 1 {
		return sum, fmt.Errorf("batch size must be >= 1, got %d", cfg.BatchSize)
	}
	start := time.Now()
	job := cfg.Job
	if job == "" {
		job = "arxiv_load"
	}

	repo, err := storage.New(ctx, storage.Config{Kind: cfg.Storage.Kind, DSN: cfg.StorageDSN()})
	if err != nil {
		return sum, fmt.Errorf("open storage: %w", err)
	}
	defer repo.Close()

	t0 := time.Now()
	err = storage.EnsureSchema(ctx, cfg.Storage.Kind, repo)
	metrics.RecordStep(job, "ensure_schema", err, time.Since(t0))
	if err != nil {
		return sum, err
	}

	// Full read pass over the input; only sizes the progress denominator.
	t0 = time.Now()
	lines, err := file.CountLines(cfg.InputPath)
	metrics.RecordStep(job, "count_lines", err, time.Since(t0))
	if err != nil {
		return sum, err
	}
	sum.Lines = lines
	expected := (lines + cfg.BatchSize - 1) / cfg.BatchSize
	log.Printf("input: path=%s lines=%d batch_size=%d expected_batches=%d",
		cfg.InputPath, lines, cfg.BatchSize, expected)

	var src datasource.Source = file.NewLocal(cfg.InputPath)
	rc, err := src.Open(ctx)
	if err != nil {
		return sum, err
	}
	defer rc.Close()

	rd, err := ndjson.NewReader(rc, cfg.BatchSize)
	if err != nil {
		return sum, err
	}

	docTable := schema.Documents().Name
	catTable := schema.Categories().Name

	seen := make(map[string]struct{})
	nextCategoryID := int64(1)
	lastFlush := start

	for batchNo := 1; ; batchNo++ {
		batch, err := rd.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return sum, err
		}

		t0 := time.Now()
		res := transform.Apply(batch, seen, nextCategoryID)

		// Documents must land before categories: arxiv_id references them.
		var nCats int64
		nDocs, err := storage.AppendDedup(ctx, repo, docTable, arxiv.DocumentColumns(), "id", res.Documents)
		if err == nil {
			nCats, err = storage.AppendDedup(ctx, repo, catTable, arxiv.CategoryColumns(), "id", res.Categories)
		}
		metrics.RecordStep(job, "batch", err, time.Since(t0))
		if err != nil {
			return sum, fmt.Errorf("batch %d: %w", batchNo, err)
		}

		for _, id := range res.NewIDs {
			seen[id] = struct{}{}
		}
		nextCategoryID = res.NextCategoryID

		dups := int64(len(batch) - len(res.NewIDs))
		sum.Batches++
		sum.Parsed += int64(len(batch))
		sum.Documents += nDocs
		sum.Categories += nCats
		sum.Duplicates += dups

		now := time.Now()
		sinceLast := now.Sub(lastFlush)
		rps := float64(0)
		if sinceLast > 0 {
			rps = float64(len(batch)) / sinceLast.Seconds()
		}
		log.Printf(
			"batch #%d/%d: rows=%d docs=%d dups=%d rps=%.0f total_docs=%d elapsed=%s",
			batchNo, expected, len(batch), nDocs, dups, rps,
			sum.Documents, now.Sub(start).Truncate(time.Millisecond),
		)
		lastFlush = now

		metrics.RecordBatches(job, 1)
		metrics.RecordRow(job, "parsed", int64(len(batch)))
		metrics.RecordRow(job, "documents_inserted", nDocs)
		metrics.RecordRow(job, "categories_inserted", nCats)
		metrics.RecordRow(job, "duplicates_dropped", dups)
	}

	sum.Elapsed = time.Since(start)
	log.Printf(
		"done: batches=%d parsed=%d documents=%d categories=%d duplicates=%d elapsed=%s",
		sum.Batches, sum.Parsed, sum.Documents, sum.Categories, sum.Duplicates,
		sum.Elapsed.Truncate(time.Millisecond),
	)
	return sum, nil
}
