// Package app provides the application context and dependency management
// for the partsync CLI. It centralizes configuration, logging and the
// lifecycle of shared resources such as the persistence sink.
package app

import (
	"context"
	"sync"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog"

	"github.com/agentstation/partsync"
	"github.com/agentstation/partsync/internal/appcontext"
	"github.com/agentstation/partsync/pkg/errors"
	"github.com/agentstation/partsync/pkg/sink"
)

// App represents the partsync application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Sink (lazy-initialized, singleton)
	mu   sync.Mutex
	sink sink.Sink
}

// New creates a new App instance with the given version information.
// The app is initialized with configuration loaded from the environment
// that can be customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Settings returns the reconciliation settings.
func (a *App) Settings() appcontext.Settings {
	return a.config.Settings
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Open starts a session for pair with options built from the settings,
// followed by opts. The template setting is left to the commands that add
// components.
func (a *App) Open(pair partsync.Pair, opts ...partsync.Option) (*partsync.Session, error) {
	s := a.config.Settings
	base := []partsync.Option{
		partsync.WithLogger(a.logger),
		partsync.WithAdd(s.AddEnabled),
		partsync.WithDelete(s.DeleteEnabled),
		partsync.WithSave(s.LibSave),
	}
	if s.GlobalField != "" {
		base = append(base, partsync.WithGlobalField(s.GlobalField, s.GlobalValue))
	}
	return partsync.Open(pair, append(base, opts...)...)
}

// Sink returns the Redis sink, connecting lazily on first use.
func (a *App) Sink() (sink.Sink, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.sink != nil {
		return a.sink, nil
	}

	s := a.config.Settings
	rs := sink.NewRedisSink(s.RedisAddr, s.RedisPassword, s.RedisDB, s.SinkPrefix)
	if err := rs.Ping(context.Background()); err != nil {
		_ = rs.Close()
		return nil, err
	}
	a.sink = rs
	return rs, nil
}

// Confirm asks a yes/no question on the terminal.
func (a *App) Confirm(title, description string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Apply").
				Negative("Cancel").
				Value(&ok),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, errors.WrapResource("prompt", "confirmation", "", err)
	}
	return ok, nil
}

// Shutdown releases shared resources.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.sink == nil {
		return nil
	}
	err := a.sink.Close()
	a.sink = nil
	return err
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithSink sets a custom sink (useful for testing).
func WithSink(s sink.Sink) Option {
	return func(a *App) error {
		a.sink = s
		return nil
	}
}
