// Package prompush implements a Prometheus Pushgateway backend for the
// metrics package.
//
// A batch load is a short-lived job, so a scrape endpoint is the wrong
// shape; instead metrics accumulate in a private registry and are pushed to
// a Pushgateway when the run flushes. All Prometheus-specific dependencies
// live here so the rest of the project stays decoupled from the metric
// system.
package prompush

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"arxivetl/internal/metrics"
)

// Backend is a Prometheus Pushgateway metrics backend.
type Backend struct {
	gatewayURL string
	jobName    string // Pushgateway "job" group
	reg        *prometheus.Registry

	stepCounter  *prometheus.CounterVec // "load_step_total"
	stepDuration *prometheus.SummaryVec // "load_step_duration_seconds"

	recordCounter *prometheus.CounterVec // "load_records_total"
	batchCounter  prometheus.Counter     // "load_batches_total"
}

// NewBackend constructs a Pushgateway backend. jobName doubles as the
// Pushgateway grouping key; gatewayURL is the base URL of the server.
func NewBackend(jobName, gatewayURL string) (*Backend, error) {
	if gatewayURL == "" {
		return nil, fmt.Errorf("prompush: gateway URL is required")
	}
	if jobName == "" {
		jobName = "arxiv_load"
	}

	reg := prometheus.NewRegistry()

	stepCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "load_step_total",
			Help: "Total number of load step executions, partitioned by step and status.",
		},
		[]string{"step", "status"},
	)
	stepDuration := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "load_step_duration_seconds",
			Help:       "Duration of load steps in seconds, partitioned by step and status.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"step", "status"},
	)
	recordCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "load_records_total",
			Help: "Record-level counts per kind (parsed, documents_inserted, duplicates_dropped, ...).",
		},
		[]string{"kind"},
	)
	batchCounter := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "load_batches_total",
			Help: "Total number of input batches processed by this load.",
		},
	)

	if err := reg.Register(stepCounter); err != nil {
		return nil, fmt.Errorf("prompush: register step counter: %w", err)
	}
	if err := reg.Register(stepDuration); err != nil {
		return nil, fmt.Errorf("prompush: register step summary: %w", err)
	}
	if err := reg.Register(recordCounter); err != nil {
		return nil, fmt.Errorf("prompush: register record counter: %w", err)
	}
	if err := reg.Register(batchCounter); err != nil {
		return nil, fmt.Errorf("prompush: register batch counter: %w", err)
	}

	return &Backend{
		gatewayURL:    gatewayURL,
		jobName:       jobName,
		reg:           reg,
		stepCounter:   stepCounter,
		stepDuration:  stepDuration,
		recordCounter: recordCounter,
		batchCounter:  batchCounter,
	}, nil
}

// IncCounter implements metrics.Backend.IncCounter.
func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	switch name {
	case "load_step_total":
		if b.stepCounter == nil {
			return
		}
		b.stepCounter.WithLabelValues(labels["step"], labels["status"]).Add(delta)

	case "load_records_total":
		if b.recordCounter == nil {
			return
		}
		b.recordCounter.WithLabelValues(labels["kind"]).Add(delta)

	case "load_batches_total":
		if b.batchCounter == nil {
			return
		}
		b.batchCounter.Add(delta)

	default:
		// unknown metric name: ignore
	}
}

// ObserveHistogram implements metrics.Backend.ObserveHistogram.
func (b *Backend) ObserveHistogram(name string, value float64, labels metrics.Labels) {
	if name != "load_step_duration_seconds" || b.stepDuration == nil {
		return
	}
	b.stepDuration.WithLabelValues(labels["step"], labels["status"]).Observe(value)
}

// Flush pushes the current registry to the Pushgateway.
func (b *Backend) Flush() error {
	return push.New(b.gatewayURL, b.jobName).
		Gatherer(b.reg).
		Push()
}
