// Package metrics exposes Prometheus instrumentation for reconciliation.
//
// Metrics collected:
//   - vtree_ops_total: Counter of surface operations by op
//   - vtree_renders_total: Counter of component renders by component and status
//   - vtree_render_duration_seconds: Histogram of component update duration
//
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// Config configures the Prometheus metrics.
type Config struct {
	// Namespace is the metrics namespace (default: "vtree").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: a fresh registry owned by the Metrics value.
	Registry prometheus.Registerer
}

// Option configures the Prometheus metrics.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "vtree",
		Buckets:   prometheus.DefBuckets,
	}
}

// Metrics holds the reconciliation collectors.
type Metrics struct {
	ops            *prometheus.CounterVec
	renders        *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	gatherer       prometheus.Gatherer
}

// New registers the collectors and returns them.
func New(opts ...Option) *Metrics {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	var gatherer prometheus.Gatherer
	if config.Registry == nil {
		reg := prometheus.NewRegistry()
		config.Registry = reg
		gatherer = reg
	} else if g, ok := config.Registry.(prometheus.Gatherer); ok {
		gatherer = g
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		ops: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "ops_total",
			Help:        "Total number of surface operations performed by the reconciler",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),

		renders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of component renders",
			ConstLabels: config.ConstLabels,
		}, []string{"component", "status"}),

		renderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Component update duration in seconds, render and patch included",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"component"}),

		gatherer: gatherer,
	}
}

// RecordOp counts one surface operation.
func (m *Metrics) RecordOp(op string) {
	if m == nil {
		return
	}
	m.ops.WithLabelValues(op).Inc()
}

// ObserveRender records one component update.
func (m *Metrics) ObserveRender(component string, d time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.renders.WithLabelValues(component, status).Inc()
	m.renderDuration.WithLabelValues(component).Observe(d.Seconds())
}

// Gather returns the current metric families, or nil if the configured
// registry cannot be gathered.
func (m *Metrics) Gather() ([]*dto.MetricFamily, error) {
	if m == nil || m.gatherer == nil {
		return nil, nil
	}
	return m.gatherer.Gather()
}

// WriteText writes the gathered metrics in the Prometheus text exposition
// format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
