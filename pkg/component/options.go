package component

import "log/slog"

// Option configures a component.
type Option func(*options)

type options struct {
	name   string
	logger *slog.Logger
}

// WithName sets the component name used in logs, spans and metrics.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLogger sets the component's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
