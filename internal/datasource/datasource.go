// Package datasource defines the minimal contract for where the metadata
// dump comes from. The loader only ever needs a one-shot byte stream.
package datasource

import (
	"context"
	"io"
)

// Source produces a readable stream of the input data. Open may be called
// once per run; the returned reader is consumed exactly once.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
