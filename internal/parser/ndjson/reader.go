// Package ndjson implements a chunked reader for newline-delimited JSON
// sources: one arXiv metadata object per line, consumed in batches of a
// configured size.
//
// The reader is deliberately strict where the generic JSON parsers in this
// family of tools are lenient: the metadata dump is machine-generated, so a
// line that fails to decode indicates a truncated or corrupt download and
// aborts the run rather than being skipped.
package ndjson

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"arxivetl/internal/arxiv"
)

// maxLineBytes bounds a single input line. Abstracts run a few KB; anything
// near this limit is a corrupt file, not a long paper.
const maxLineBytes = 16 << 20

// Reader produces batches of decoded records from an NDJSON stream. It
// consumes the underlying reader exactly once and is not restartable.
type Reader struct {
	sc        *bufio.Scanner
	batchSize int
	line      int
	done      bool
}

// NewReader wraps r in a batch reader. batchSize must be >= 1.
func NewReader(r io.Reader, batchSize int) (*Reader, error) {
	if batchSize < 1 {
		return nil, fmt.Errorf("ndjson: batch size must be >= 1, got %d", batchSize)
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &Reader{sc: sc, batchSize: batchSize}, nil
}

// Next returns the next batch of up to batchSize records in source order.
// The final batch may be shorter. After the source is exhausted Next returns
// io.EOF. Blank lines are skipped; a malformed line fails the whole read
// with its 1-based line number.
func (r *Reader) Next() ([]arxiv.Record, error) {
	if r.done {
		return nil, io.EOF
	}

	batch := make([]arxiv.Record, 0, r.batchSize)
	for r.sc.Scan() {
		r.line++
		raw := bytes.TrimSpace(r.sc.Bytes())
		if len(raw) == 0 {
			continue
		}
		rec, err := arxiv.ParseRecord(raw)
		if err != nil {
			r.done = true
			return nil, fmt.Errorf("ndjson: line %d: %w", r.line, err)
		}
		batch = append(batch, rec)
		if len(batch) == r.batchSize {
			return batch, nil
		}
	}

	r.done = true
	if err := r.sc.Err(); err != nil {
		return nil, fmt.Errorf("ndjson: read line %d: %w", r.line+1, err)
	}
	if len(batch) > 0 {
		return batch, nil
	}
	return nil, io.EOF
}

// Lines reports how many input lines have been consumed so far, including
// blank ones. Useful for progress output.
func (r *Reader) Lines() int { return r.line }
