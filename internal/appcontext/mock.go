package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/partsync"
	"github.com/agentstation/partsync/pkg/sink"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default value.
type Mock struct {
	SettingsValue Settings
	Format        string
	Sessions      []*partsync.Session

	OpenFunc    func(pair partsync.Pair, opts ...partsync.Option) (*partsync.Session, error)
	SinkFunc    func() (sink.Sink, error)
	ConfirmFunc func(title, description string) (bool, error)
	LoggerFunc  func() *zerolog.Logger
	VersionFunc func() string
}

// Settings returns SettingsValue.
func (m *Mock) Settings() Settings {
	return m.SettingsValue
}

// Open uses the mock function or opens a real session with a no-op logger.
// Opened sessions are recorded in Sessions.
func (m *Mock) Open(pair partsync.Pair, opts ...partsync.Option) (*partsync.Session, error) {
	if m.OpenFunc != nil {
		return m.OpenFunc(pair, opts...)
	}
	opts = append([]partsync.Option{partsync.WithLogger(m.Logger())}, opts...)
	s, err := partsync.Open(pair, opts...)
	if err == nil {
		m.Sessions = append(m.Sessions, s)
	}
	return s, err
}

// Sink returns a sink using the mock function or a fresh MemorySink.
func (m *Mock) Sink() (sink.Sink, error) {
	if m.SinkFunc != nil {
		return m.SinkFunc()
	}
	return sink.NewMemorySink(), nil
}

// Confirm uses the mock function or answers yes.
func (m *Mock) Confirm(title, description string) (bool, error) {
	if m.ConfirmFunc != nil {
		return m.ConfirmFunc(title, description)
	}
	return true, nil
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns Format.
func (m *Mock) OutputFormat() string {
	return m.Format
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns "unknown".
func (m *Mock) Commit() string {
	return "unknown"
}

// Date returns "unknown".
func (m *Mock) Date() string {
	return "unknown"
}

// BuiltBy returns "test".
func (m *Mock) BuiltBy() string {
	return "test"
}

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
