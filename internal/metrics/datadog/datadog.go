// Package datadog implements a Datadog backend for the metrics package
// using the DogStatsD protocol. Labels become Datadog tags; counter and
// histogram observations are forwarded to a local or remote agent. The
// Datadog-specific dependency stays isolated here.
package datadog

import (
	"fmt"

	"github.com/DataDog/datadog-go/v5/statsd"

	"arxivetl/internal/metrics"
)

// Config holds Datadog backend configuration.
type Config struct {
	// Addr is the DogStatsD address, e.g. "127.0.0.1:8125" or a unix socket.
	Addr string

	// Namespace is an optional prefix added to all metric names.
	Namespace string

	// GlobalTags are applied to every metric emitted by this backend,
	// e.g. []string{"env:prod", "service:arxivetl"}.
	GlobalTags []string
}

// Backend is a Datadog implementation of metrics.Backend.
type Backend struct {
	client *statsd.Client
}

// NewBackend constructs a Datadog metrics backend. Addr is required.
func NewBackend(cfg Config) (*Backend, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("datadog: Addr is required")
	}

	var opts []statsd.Option
	if cfg.Namespace != "" {
		opts = append(opts, statsd.WithNamespace(cfg.Namespace))
	}
	if len(cfg.GlobalTags) > 0 {
		opts = append(opts, statsd.WithTags(cfg.GlobalTags))
	}
	c, err := statsd.New(cfg.Addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("datadog: create client: %w", err)
	}

	return &Backend{client: c}, nil
}

// IncCounter implements metrics.Backend.IncCounter as a Datadog Count.
// Fractional deltas are rounded; the facade only emits whole counts.
func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	if b.client == nil {
		return
	}
	_ = b.client.Count(name, int64(delta), labelsToTags(labels), 1)
}

// ObserveHistogram implements metrics.Backend.ObserveHistogram.
func (b *Backend) ObserveHistogram(name string, value float64, labels metrics.Labels) {
	if b.client == nil {
		return
	}
	_ = b.client.Histogram(name, value, labelsToTags(labels), 1)
}

// Flush closes the statsd client, which flushes any buffered data; it is
// called at process shutdown.
func (b *Backend) Flush() error {
	if b.client == nil {
		return nil
	}
	return b.client.Close()
}

// labelsToTags converts labels into Datadog tag strings "key:value".
func labelsToTags(lbls metrics.Labels) []string {
	if len(lbls) == 0 {
		return nil
	}
	out := make([]string, 0, len(lbls))
	for k, v := range lbls {
		out = append(out, fmt.Sprintf("%s:%s", k, v))
	}
	return out
}
