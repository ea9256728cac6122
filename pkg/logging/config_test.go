package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/partsync/pkg/logging"
)

func TestConfigFunctions(t *testing.T) {
	originalLogger := *logging.Default()
	originalLevel := zerolog.GlobalLevel()
	defer func() {
		logging.SetDefault(originalLogger)
		zerolog.SetGlobalLevel(originalLevel)
	}()

	t.Run("DefaultConfig returns sensible defaults", func(t *testing.T) {
		cfg := logging.DefaultConfig()
		require.NotNil(t, cfg)
		assert.Equal(t, "info", cfg.Level)
		assert.Equal(t, "auto", cfg.Format)
		assert.False(t, cfg.AddCaller)
		assert.Equal(t, "stderr", cfg.Output)
	})

	t.Run("NewLoggerFromConfig writes to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "log.txt")
		logger := logging.NewLoggerFromConfig(&logging.Config{
			Level:     "debug",
			Format:    "json",
			Output:    path,
			AddCaller: true,
			Fields:    map[string]any{"app": "partsync"},
		})
		logger.Info().Msg("test message")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "test message")
		assert.Contains(t, string(content), `"app":"partsync"`)
	})

	t.Run("Configure filters below level", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "log.txt")
		logging.Configure(&logging.Config{Level: "warn", Format: "json", Output: path})

		logging.Debug().Msg("debug message")
		logging.Info().Msg("info message")
		logging.Warn().Msg("warn message")
		logging.Error().Msg("error message")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		output := string(content)
		assert.NotContains(t, output, "debug message")
		assert.NotContains(t, output, "info message")
		assert.Contains(t, output, "warn message")
		assert.Contains(t, output, "error message")
	})

	t.Run("console format", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "log.txt")
		logger := logging.NewLoggerFromConfig(&logging.Config{
			Level:   "info",
			Format:  "console",
			Output:  path,
			NoColor: true,
		})
		logger.Info().Str("key", "value").Msg("console test")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "console test")
		assert.Contains(t, string(content), "INF")
	})

	t.Run("discard output", func(t *testing.T) {
		assert.NotPanics(t, func() {
			logger := logging.NewLoggerFromConfig(&logging.Config{Level: "info", Output: "discard"})
			logger.Info().Msg("nowhere")
		})
	})

	t.Run("ConfigureFromEnv", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "error")
		t.Setenv("LOG_OUTPUT", "discard")
		logging.ConfigureFromEnv()
		assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())
	})
}

func TestLoggerFunctions(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(originalLevel)

	t.Run("SetDefault sets global logger", func(t *testing.T) {
		original := *logging.Default()
		defer logging.SetDefault(original)

		var buf bytes.Buffer
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logging.SetDefault(zerolog.New(&buf).Level(zerolog.InfoLevel))

		logging.Info().Msg("test with new default")
		logging.Err(assert.AnError).Msg("failed")
		assert.Contains(t, buf.String(), "test with new default")
		assert.Contains(t, buf.String(), "failed")
	})

	t.Run("New creates JSON logger", func(t *testing.T) {
		var buf bytes.Buffer
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger := logging.New(&buf)
		logger.Info().Str("component", "R1").Msg("json")
		assert.Contains(t, buf.String(), `"component":"R1"`)
	})

	t.Run("Nop discards", func(t *testing.T) {
		assert.NotNil(t, logging.NewNopLogger())
		logging.DisableLoggingForTest(t)
		assert.NotPanics(t, func() { logging.Info().Msg("dropped") })
	})
}
