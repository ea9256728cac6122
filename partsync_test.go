package partsync_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/partsync"
	"github.com/agentstation/partsync/pkg/errors"
	"github.com/agentstation/partsync/pkg/logging"
	"github.com/agentstation/partsync/pkg/schlib"
	"github.com/agentstation/partsync/pkg/sink"
	"github.com/agentstation/partsync/pkg/tabular"
)

// copyFixture copies the passives library into a fresh folder pair.
func copyFixture(t *testing.T) partsync.Pair {
	t.Helper()
	root := t.TempDir()
	libDir := filepath.Join(root, "lib")
	csvDir := filepath.Join(root, "csv")
	require.NoError(t, os.MkdirAll(libDir, 0o755))
	require.NoError(t, os.MkdirAll(csvDir, 0o755))

	for _, name := range []string{"passives.lib", "passives.dcm"} {
		data, err := os.ReadFile(filepath.Join("pkg", "schlib", "testdata", name))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(libDir, name), data, 0o644))
	}

	pairs, err := partsync.PairFolders(libDir, csvDir)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	return pairs[0]
}

func open(t *testing.T, pair partsync.Pair, opts ...partsync.Option) *partsync.Session {
	t.Helper()
	opts = append([]partsync.Option{partsync.WithLogger(logging.NewNopLogger())}, opts...)
	s, err := partsync.Open(pair, opts...)
	require.NoError(t, err)
	return s
}

// editCSV rewrites one cell of the exported CSV.
func editCSV(t *testing.T, path, name, column, value string) {
	t.Helper()
	table, err := tabular.Read(path)
	require.NoError(t, err)

	col := -1
	for i, h := range table.Header {
		if h == column {
			col = i
		}
	}
	require.NotEqual(t, -1, col, "column %s", column)

	for _, row := range table.Rows {
		if row[0] == name {
			row[col] = value
		}
	}
	require.NoError(t, tabular.Write(path, table.Header, table.Rows))
}

func TestExport(t *testing.T) {
	pair := copyFixture(t)
	s := open(t, pair)

	n, err := s.Export(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	table, err := tabular.Read(pair.CSV)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"name", "description_doc", "keywords_doc", "datasheet_doc",
		"reference", "value", "footprint", "empty", "rev", "spec", "spec2", "voltage_rating",
	}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "R_0603", table.Rows[0][0])
	assert.Equal(t, "", table.Rows[1][8], "C_0402 has no rev")

	t.Run("refuses to overwrite", func(t *testing.T) {
		_, err := s.Export(context.Background(), false)
		require.Error(t, err)
		assert.True(t, errors.IsAlreadyExists(err))
	})

	t.Run("force overwrites", func(t *testing.T) {
		_, err := s.Export(context.Background(), true)
		assert.NoError(t, err)
	})
}

func TestDiffAfterExportIsEmpty(t *testing.T) {
	pair := copyFixture(t)
	s := open(t, pair)
	_, err := s.Export(context.Background(), false)
	require.NoError(t, err)

	report, err := s.Diff(context.Background())
	require.NoError(t, err)
	assert.True(t, report.IsEmpty(), report.String())
}

func TestDiffMissingCSV(t *testing.T) {
	s := open(t, copyFixture(t))
	_, err := s.Diff(context.Background())
	require.Error(t, err)
	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)
}

func TestUpdateLogsCallerRunID(t *testing.T) {
	pair := copyFixture(t)
	tl := logging.NewTestLogger(t)
	s := open(t, pair, partsync.WithLogger(tl.Logger))
	_, err := s.Export(context.Background(), false)
	require.NoError(t, err)
	editCSV(t, pair.CSV, "R_0603", "value", "1k")

	ctx := logging.WithRunID(context.Background(), "run-42")
	_, err = s.Update(ctx)
	require.NoError(t, err)

	tl.AssertContains(t, `"run_id":"run-42"`)
	tl.AssertContains(t, `"stage":"update"`)
	for _, line := range tl.Lines() {
		assert.LessOrEqual(t, strings.Count(line, `"run_id"`), 1, line)
		assert.LessOrEqual(t, strings.Count(line, `"library"`), 1, line)
	}
}

func TestUpdate(t *testing.T) {
	pair := copyFixture(t)
	s := open(t, pair)
	_, err := s.Export(context.Background(), false)
	require.NoError(t, err)

	editCSV(t, pair.CSV, "R_0603", "value", "1k")
	editCSV(t, pair.CSV, "R_0603", "rev", "")

	var updated []string
	s.OnComponentUpdated(func(name string, changes int) {
		updated = append(updated, name)
		assert.Equal(t, 2, changes)
	})

	res, err := s.Update(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Applied)
	assert.Equal(t, 1, res.Saves)
	assert.True(t, res.Persisted)
	assert.Empty(t, res.Errors)
	assert.Equal(t, []string{"R_0603"}, updated)

	lib, err := schlib.Load(pair.Library)
	require.NoError(t, err)
	r, err := lib.Get("R_0603")
	require.NoError(t, err)
	assert.Equal(t, "1k", r.Fields[1].Value)
	for _, f := range r.Fields {
		assert.NotEqual(t, "Rev", f.Label)
	}

	t.Run("second run is a no-op", func(t *testing.T) {
		res, err := s.Update(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, res.Applied)
		assert.False(t, res.Persisted)
	})
}

func TestUpdateWithoutSave(t *testing.T) {
	pair := copyFixture(t)
	s := open(t, pair)
	_, err := s.Export(context.Background(), false)
	require.NoError(t, err)
	editCSV(t, pair.CSV, "C_0402", "value", "220n")

	before, err := os.ReadFile(pair.Library)
	require.NoError(t, err)

	s = open(t, pair, partsync.WithSave(false))
	res, err := s.Update(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Applied)
	assert.False(t, res.Persisted)

	after, err := os.ReadFile(pair.Library)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestUpdateGlobalField(t *testing.T) {
	pair := copyFixture(t)
	s := open(t, pair)
	_, err := s.Export(context.Background(), false)
	require.NoError(t, err)

	s = open(t, pair, partsync.WithGlobalField("Manufacturer", "Yageo"))
	res, err := s.Update(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Applied)

	lib, err := schlib.Load(pair.Library)
	require.NoError(t, err)
	for _, c := range lib.Components() {
		last := c.Fields[len(c.Fields)-1]
		assert.Equal(t, "Manufacturer", last.Label, c.Name)
		assert.Equal(t, "Yageo", last.Value, c.Name)
		assert.False(t, last.Visible)
	}
}

func TestWithGlobalFieldValidation(t *testing.T) {
	_, err := partsync.Open(copyFixture(t), partsync.WithGlobalField("", "x"))
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestUpdateDeleteAndHooks(t *testing.T) {
	pair := copyFixture(t)
	s := open(t, pair)
	_, err := s.Export(context.Background(), false)
	require.NoError(t, err)

	table, err := tabular.Read(pair.CSV)
	require.NoError(t, err)
	require.NoError(t, tabular.Write(pair.CSV, table.Header, table.Rows[:1]))

	var removed []string
	s.OnComponentRemoved(func(name string) { removed = append(removed, name) })

	res, err := s.Update(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"C_0402"}, removed)
	assert.True(t, res.Persisted)
	assert.Equal(t, []string{"R_0603"}, s.Library().Names())
}

func TestPublish(t *testing.T) {
	mem := sink.NewMemorySink()
	s := open(t, copyFixture(t), partsync.WithSink(mem))

	n, err := s.Publish(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	recs := mem.Records("passives")
	require.Len(t, recs, 2)
	assert.Equal(t, "10k", recs[0].Value("value"))

	t.Run("without sink", func(t *testing.T) {
		s := open(t, copyFixture(t))
		_, err := s.Publish(context.Background())
		assert.Error(t, err)
	})
}

func TestCanceledContext(t *testing.T) {
	s := open(t, copyFixture(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Export(ctx, false)
	assert.True(t, errors.IsCanceled(err))
}
