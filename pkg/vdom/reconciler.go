package vdom

import (
	"log/slog"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vtree/pkg/metrics"
	"github.com/vango-dev/vtree/pkg/surface"
)

// Default tracer name for reconciliation spans.
const defaultTracerName = "vtree"

// Reconciler applies descriptor changes to a surface.
//
// A Reconciler is not safe for concurrent use. Every component mounted
// through it shares its document, logger, metrics and tracer.
type Reconciler struct {
	doc     surface.Document
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
	stats   Stats
	ids     uint64
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reconciler) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics records every operation into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Reconciler) {
		r.metrics = m
	}
}

// WithTracerName resolves the tracer from the global provider under name.
func WithTracerName(name string) Option {
	return func(r *Reconciler) {
		if name != "" {
			r.tracer = otel.Tracer(name)
		}
	}
}

// WithTracer sets the tracer directly.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Reconciler) {
		if tracer != nil {
			r.tracer = tracer
		}
	}
}

// NewReconciler creates a Reconciler for doc.
func NewReconciler(doc surface.Document, opts ...Option) *Reconciler {
	r := &Reconciler{
		doc:    doc,
		logger: slog.Default().With("component", "vdom"),
		tracer: otel.Tracer(defaultTracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Document returns the surface document.
func (r *Reconciler) Document() surface.Document {
	return r.doc
}

// Logger returns the reconciler's logger.
func (r *Reconciler) Logger() *slog.Logger {
	return r.logger
}

// Metrics returns the configured metrics, or nil.
func (r *Reconciler) Metrics() *metrics.Metrics {
	return r.metrics
}

// Tracer returns the tracer used for update spans.
func (r *Reconciler) Tracer() trace.Tracer {
	return r.tracer
}

// Stats returns the operations performed since creation or the last
// ResetStats.
func (r *Reconciler) Stats() Stats {
	return r.stats
}

// ResetStats clears the operation counts.
func (r *Reconciler) ResetStats() {
	r.stats = Stats{}
}

// NewInstanceID returns the next component instance identifier ("c1",
// "c2", ...).
func (r *Reconciler) NewInstanceID() string {
	r.ids++
	return "c" + strconv.FormatUint(r.ids, 10)
}

// Dispose releases every component instance in the subtree of n. Components
// call it for their committed content when they are disposed themselves.
func (r *Reconciler) Dispose(n *VNode) {
	r.dispose(n)
}

func (r *Reconciler) record(op Op) {
	r.stats.add(op)
	r.metrics.RecordOp(op.String())
}
