package differ

import "github.com/rs/zerolog"

// Option is a functional option for configuring an Engine.
type Option func(*Engine)

// WithAdd enables or disables component additions.
func WithAdd(enabled bool) Option {
	return func(e *Engine) {
		e.add = enabled
	}
}

// WithDelete enables or disables component deletions.
func WithDelete(enabled bool) Option {
	return func(e *Engine) {
		e.delete = enabled
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}
