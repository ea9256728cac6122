package logging_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/partsync/pkg/logging"
)

func TestContextFunctions(t *testing.T) {
	t.Run("WithLibrary adds library to context logger", func(t *testing.T) {
		tl := logging.NewTestLogger(t)
		ctx := logging.WithLogger(context.Background(), tl.Logger)
		ctx = logging.WithLibrary(ctx, "passives")

		logging.FromContext(ctx).Info().Msg("loaded")
		tl.AssertContains(t, `"library":"passives"`)
	})

	t.Run("chaining context functions", func(t *testing.T) {
		tl := logging.NewTestLogger(t)
		ctx := logging.WithLogger(context.Background(), tl.Logger)
		ctx = logging.WithLibrary(ctx, "passives")
		ctx = logging.WithComponent(ctx, "R_0603")
		ctx = logging.WithStage(ctx, "replace")

		logging.Ctx(ctx).Debug().Msg("renamed")
		assert.True(t, tl.ContainsAll(`"library":"passives"`, `"component":"R_0603"`, `"stage":"replace"`, "renamed"))
	})

	t.Run("WithFields adds custom fields", func(t *testing.T) {
		tl := logging.NewTestLogger(t)
		ctx := logging.WithLogger(context.Background(), tl.Logger)
		ctx = logging.WithFields(ctx, map[string]any{"csv": "passives.csv", "rows": 12})

		logging.FromContext(ctx).Info().Msg("read")
		assert.True(t, tl.ContainsAll(`"csv":"passives.csv"`, `"rows":12`))
	})

	t.Run("WithRunID generates an id when empty", func(t *testing.T) {
		ctx := logging.WithRunID(context.Background(), "")
		id := logging.RunID(ctx)
		require.NotEmpty(t, id)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	})

	t.Run("WithRunID keeps a given id", func(t *testing.T) {
		tl := logging.NewTestLogger(t)
		ctx := logging.WithLogger(context.Background(), tl.Logger)
		ctx = logging.WithRunID(ctx, "run-1")

		assert.Equal(t, "run-1", logging.RunID(ctx))
		logging.FromContext(ctx).Info().Msg("x")
		tl.AssertContains(t, `"run_id":"run-1"`)
	})

	t.Run("WithError ignores nil", func(t *testing.T) {
		ctx := context.Background()
		assert.Equal(t, ctx, logging.WithError(ctx, nil))
	})

	t.Run("FromContext falls back to default", func(t *testing.T) {
		//nolint:staticcheck // nil context is handled explicitly
		assert.Equal(t, logging.Default(), logging.FromContext(nil))
		assert.Equal(t, logging.Default(), logging.FromContext(context.Background()))
		assert.Empty(t, logging.RunID(context.Background()))
	})
}
