package app

import (
	"testing"
)

// TestDetermineLogLevel tests the log level precedence logic.
func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name:     "default level when no flags set",
			config:   &Config{},
			expected: "info",
		},
		{
			name:     "verbose flag sets debug",
			config:   &Config{Verbose: true},
			expected: "debug",
		},
		{
			name:     "quiet flag sets warn",
			config:   &Config{Quiet: true},
			expected: "warn",
		},
		{
			name:     "explicit log-level overrides verbose",
			config:   &Config{LogLevel: "error", Verbose: true},
			expected: "error",
		},
		{
			name:     "explicit log-level overrides both flags",
			config:   &Config{LogLevel: "trace", Verbose: true, Quiet: true},
			expected: "trace",
		},
		{
			name:     "both verbose and quiet prefers quiet",
			config:   &Config{Verbose: true, Quiet: true},
			expected: "warn",
		},
		{
			name:     "invalid log level falls back to info",
			config:   &Config{LogLevel: "loud"},
			expected: "info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := determineLogLevel(tt.config); got != tt.expected {
				t.Errorf("determineLogLevel() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

// TestValidateLogLevel tests log level validation.
func TestValidateLogLevel(t *testing.T) {
	tests := map[string]string{
		"trace":   "trace",
		"debug":   "debug",
		"info":    "info",
		"warn":    "warn",
		"error":   "error",
		"invalid": "info",
		"":        "info",
		"DEBUG":   "info",
	}

	for level, expected := range tests {
		if got := validateLogLevel(level); got != expected {
			t.Errorf("validateLogLevel(%q) = %q, expected %q", level, got, expected)
		}
	}
}

// TestNewLogger verifies logger creation with various configs.
func TestNewLogger(t *testing.T) {
	configs := []*Config{
		{LogFormat: "auto", LogOutput: "discard"},
		{LogFormat: "json", LogOutput: "discard", Verbose: true},
		{LogFormat: "console", LogOutput: "discard", NoColor: true},
		{LogLevel: "trace", LogOutput: "discard"},
	}

	for _, c := range configs {
		logger := NewLogger(c)
		if logger.GetLevel().String() != determineLogLevel(c) {
			t.Errorf("logger level = %s, want %s", logger.GetLevel(), determineLogLevel(c))
		}
	}
}
