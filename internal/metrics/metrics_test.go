package metrics

import (
	"errors"
	"testing"
	"time"
)

// captureBackend records every call so tests can assert on metric names,
// values, and labels.
type captureBackend struct {
	counters   []capturedMetric
	histograms []capturedMetric
	flushed    int
}

type capturedMetric struct {
	name   string
	value  float64
	labels Labels
}

func (c *captureBackend) IncCounter(name string, delta float64, labels Labels) {
	c.counters = append(c.counters, capturedMetric{name, delta, labels})
}

func (c *captureBackend) ObserveHistogram(name string, value float64, labels Labels) {
	c.histograms = append(c.histograms, capturedMetric{name, value, labels})
}

func (c *captureBackend) Flush() error {
	c.flushed++
	return nil
}

func install(t *testing.T) *captureBackend {
	t.Helper()
	b := &captureBackend{}
	SetBackend(b)
	t.Cleanup(func() { SetBackend(nopBackend{}) })
	return b
}

// The global backend is swapped per test, so none of these run in parallel.

func TestRecordStep(t *testing.T) {
	b := install(t)

	RecordStep("job1", "batch", nil, 250*time.Millisecond)
	RecordStep("job1", "batch", errors.New("boom"), time.Second)

	if len(b.counters) != 2 || len(b.histograms) != 2 {
		t.Fatalf("counters=%d histograms=%d, want 2/2", len(b.counters), len(b.histograms))
	}
	if b.counters[0].name != "load_step_total" || b.counters[0].labels["status"] != "success" {
		t.Fatalf("first counter = %+v, want load_step_total success", b.counters[0])
	}
	if b.counters[1].labels["status"] != "failure" {
		t.Fatalf("second counter status = %q, want failure", b.counters[1].labels["status"])
	}
	if b.histograms[0].name != "load_step_duration_seconds" || b.histograms[0].value != 0.25 {
		t.Fatalf("histogram = %+v, want 0.25s duration", b.histograms[0])
	}
	if b.histograms[0].labels["job"] != "job1" || b.histograms[0].labels["step"] != "batch" {
		t.Fatalf("histogram labels = %v", b.histograms[0].labels)
	}
}

func TestRecordRow(t *testing.T) {
	b := install(t)

	RecordRow("job1", "parsed", 100)
	RecordRow("job1", "duplicates_dropped", 0)
	RecordRow("job1", "documents_inserted", -5)

	if len(b.counters) != 1 {
		t.Fatalf("counters = %d, want 1 (non-positive deltas dropped)", len(b.counters))
	}
	got := b.counters[0]
	if got.name != "load_records_total" || got.value != 100 || got.labels["kind"] != "parsed" {
		t.Fatalf("counter = %+v", got)
	}
}

func TestRecordBatches(t *testing.T) {
	b := install(t)

	RecordBatches("job1", 1)
	RecordBatches("job1", 0)

	if len(b.counters) != 1 {
		t.Fatalf("counters = %d, want 1", len(b.counters))
	}
	if b.counters[0].name != "load_batches_total" {
		t.Fatalf("counter name = %q", b.counters[0].name)
	}
}

func TestSetBackend_NilKeepsCurrent(t *testing.T) {
	b := install(t)

	SetBackend(nil)
	RecordBatches("job1", 1)
	if len(b.counters) != 1 {
		t.Fatalf("nil SetBackend must keep the installed backend")
	}
}

func TestFlush_Delegates(t *testing.T) {
	b := install(t)

	if err := Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if b.flushed != 1 {
		t.Fatalf("flushed = %d, want 1", b.flushed)
	}
}

func TestNopBackend_IsDefaultSafe(t *testing.T) {
	SetBackend(nopBackend{})
	RecordStep("j", "s", nil, time.Second)
	RecordRow("j", "parsed", 1)
	if err := Flush(); err != nil {
		t.Fatalf("nop Flush: %v", err)
	}
}
