// Package appcontext provides the shared application context interface
// used by all commands. Commands accept this interface rather than the
// concrete App so they can be tested with Mock.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/partsync"
	"github.com/agentstation/partsync/pkg/sink"
)

// Settings are the reconciliation settings resolved from config file,
// environment and flags.
type Settings struct {
	LibFolder     string `mapstructure:"lib_folder"`
	CSVFolder     string `mapstructure:"csv_folder"`
	Template      string `mapstructure:"template"`
	AddEnabled    bool   `mapstructure:"add_enabled"`
	DeleteEnabled bool   `mapstructure:"delete_enabled"`
	LibSave       bool   `mapstructure:"lib_save"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	SinkPrefix    string `mapstructure:"sink_prefix"`
	GlobalField   string `mapstructure:"global_field"`
	GlobalValue   string `mapstructure:"global_value"`
}

// Interface defines the application context that commands need.
type Interface interface {
	// Settings returns the resolved reconciliation settings.
	Settings() Settings

	// Open starts a session for pair. Options derived from Settings are
	// applied first, so opts can override them.
	Open(pair partsync.Pair, opts ...partsync.Option) (*partsync.Session, error)

	// Sink returns the configured persistence sink.
	Sink() (sink.Sink, error)

	// Confirm asks the user a yes/no question.
	Confirm(title, description string) (bool, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format.
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
