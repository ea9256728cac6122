package applier

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/partsync/pkg/schlib"
)

// Option is a functional option for configuring an Applier.
type Option func(*Applier)

// WithTemplate sets the component cloned for additions.
func WithTemplate(c *schlib.Component) Option {
	return func(a *Applier) {
		a.template = c
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *Applier) {
		a.logger = logger
	}
}

// WithAdd enables or disables the add stage.
func WithAdd(enabled bool) Option {
	return func(a *Applier) {
		a.add = enabled
	}
}

// WithDelete enables or disables the delete stage.
func WithDelete(enabled bool) Option {
	return func(a *Applier) {
		a.delete = enabled
	}
}

// WithSave controls whether mutations are written through the store.
// With saving disabled the run still mutates and refreshes in memory.
func WithSave(enabled bool) Option {
	return func(a *Applier) {
		a.save = enabled
	}
}

// WithEvents registers a handler notified of component changes.
func WithEvents(h EventHandler) Option {
	return func(a *Applier) {
		if h != nil {
			a.events = h
		}
	}
}
