package pipe

import (
	"log/slog"
)

type options struct {
	name        string
	stopOnFalse *bool
	logger      *slog.Logger
	config      *Config
}

// Option configures a step. WithLogger and WithConfig configure the whole
// chain and only take effect when passed to Start.
type Option func(*options)

// Named sets the step name used in logs and in StepError.
func Named(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// StopOnFalse overrides the chain default for what a false guard does:
// true ends the run with the upstream value, false skips only this step.
func StopOnFalse(stop bool) Option {
	return func(o *options) {
		o.stopOnFalse = &stop
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.config = &cfg
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

type handlerOptions struct {
	keepGoing bool
}

// HandlerOption configures an error handler attached with OnError.
type HandlerOption func(*handlerOptions)

// KeepGoing feeds the handler's result to the next step instead of ending
// the run with it.
func KeepGoing() HandlerOption {
	return func(o *handlerOptions) {
		o.keepGoing = true
	}
}
