// Package metrics provides a small, backend-agnostic abstraction for
// recording operational metrics from the load.
//
// The package mirrors the storage abstraction pattern: a narrow Backend
// interface, a global pluggable backend defaulting to a no-op, and concrete
// metric systems isolated in subpackages (prompush, datadog). Core code only
// ever calls the helpers here, so a run with no metrics configured costs
// nothing and needs no nil checks.
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a latency/duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it (e.g. Pushgateway).
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)       {}
func (nopBackend) ObserveHistogram(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                               { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing one.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordStep measures one load phase: latency plus success/failure.
// Typical steps: "ensure_schema", "count_lines", "batch".
func RecordStep(job, step string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	lbls := Labels{
		"job":    job,
		"step":   step,
		"status": status,
	}

	backend.IncCounter("load_step_total", 1, lbls)
	backend.ObserveHistogram("load_step_duration_seconds", d.Seconds(), lbls)
}

// RecordRow increments a record-level counter for the given job and kind.
//
// Kinds mirror the run summary fields:
//   - "parsed"
//   - "documents_inserted"
//   - "categories_inserted"
//   - "duplicates_dropped"
func RecordRow(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("load_records_total", float64(delta), Labels{
		"job":  job,
		"kind": kind,
	})
}

// RecordBatches increments the processed-batch counter for the given job.
func RecordBatches(job string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("load_batches_total", float64(delta), Labels{
		"job": job,
	})
}
