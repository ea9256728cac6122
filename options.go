package partsync

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/partsync/pkg/errors"
	"github.com/agentstation/partsync/pkg/schlib"
	"github.com/agentstation/partsync/pkg/sink"
)

// Option is a function that configures a Session.
type Option func(*config) error

// config holds the run configuration of a Session.
type config struct {
	template      *schlib.Component
	templatePath  string
	addEnabled    bool
	deleteEnabled bool
	save          bool
	globalField   string
	globalValue   string
	logger        *zerolog.Logger
	sink          sink.Sink
}

func defaultConfig() *config {
	return &config{
		addEnabled:    true,
		deleteEnabled: true,
		save:          true,
	}
}

// WithTemplateFile loads the first component of a .lib file as the
// template for additions.
func WithTemplateFile(path string) Option {
	return func(c *config) error {
		if path == "" {
			return nil
		}
		lib, err := schlib.Load(path)
		if err != nil {
			return err
		}
		comps := lib.Components()
		if len(comps) == 0 {
			return errors.NewValidationError("template", path, "library has no components")
		}
		c.template = comps[0]
		c.templatePath = path
		return nil
	}
}

// WithTemplate sets the template component for additions.
func WithTemplate(t *schlib.Component) Option {
	return func(c *config) error {
		c.template = t
		return nil
	}
}

// WithAdd configures whether components missing from the library are created.
func WithAdd(enabled bool) Option {
	return func(c *config) error {
		c.addEnabled = enabled
		return nil
	}
}

// WithDelete configures whether components missing from the CSV are removed.
func WithDelete(enabled bool) Option {
	return func(c *config) error {
		c.deleteEnabled = enabled
		return nil
	}
}

// WithSave configures whether updates are written to disk.
func WithSave(enabled bool) Option {
	return func(c *config) error {
		c.save = enabled
		return nil
	}
}

// WithGlobalField fills label with value on every CSV record that lacks it.
func WithGlobalField(label, value string) Option {
	return func(c *config) error {
		if label == "" && value != "" {
			return errors.NewValidationError("global_field", label, "a global value needs a field name")
		}
		c.globalField = label
		c.globalValue = value
		return nil
	}
}

// WithLogger sets the logger used by every stage.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithSink sets the sink used by Publish.
func WithSink(s sink.Sink) Option {
	return func(c *config) error {
		c.sink = s
		return nil
	}
}
