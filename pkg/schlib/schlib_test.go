package schlib_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/partsync/pkg/errors"
	"github.com/agentstation/partsync/pkg/schlib"
)

// copyFixture copies the passives fixture into a temp dir and returns the .lib path.
func copyFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"passives.lib", "passives.dcm"} {
		data, err := os.ReadFile(filepath.Join("testdata", name))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
	}
	return filepath.Join(dir, "passives.lib")
}

func TestLoad(t *testing.T) {
	lib, err := schlib.Load(filepath.Join("testdata", "passives.lib"))
	require.NoError(t, err)

	assert.Equal(t, []string{"R_0603", "C_0402"}, lib.Names())

	r, err := lib.Get("R_0603")
	require.NoError(t, err)
	require.Len(t, r.Fields, 7)
	assert.Equal(t, "R", r.Fields[0].Reference)
	assert.Equal(t, "10k", r.Fields[1].Value)
	assert.Equal(t, "", r.Fields[3].Label)
	assert.Equal(t, "Rev", r.Fields[4].Label)
	assert.Equal(t, "A", r.Fields[4].Value)
	assert.Equal(t, -250, r.Fields[4].PosY)
	assert.False(t, r.Fields[4].Visible)
	assert.Equal(t, "R", r.Definition.Reference)

	desc, ok := r.Doc(schlib.Description)
	assert.True(t, ok)
	assert.Equal(t, "Resistor, small SMD", desc)

	c, err := lib.Get("C_0402")
	require.NoError(t, err)
	assert.True(t, c.Definition.Hidden())
	assert.Equal(t, "Voltage Rating", c.Fields[4].Label)
	_, ok = c.Doc(schlib.Datasheet)
	assert.False(t, ok)
}

func TestLoadErrors(t *testing.T) {
	t.Run("wrong extension", func(t *testing.T) {
		_, err := schlib.Load("parts.txt")
		assert.True(t, errors.IsFormatError(err))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := schlib.Load(filepath.Join(t.TempDir(), "missing.lib"))
		var ioErr *errors.IOError
		assert.ErrorAs(t, err, &ioErr)
	})

	t.Run("bad header", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.lib")
		require.NoError(t, os.WriteFile(path, []byte("hello\n"), 0o644))
		_, err := schlib.Load(path)
		assert.True(t, errors.IsFormatError(err))
	})

	t.Run("empty library", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.lib")
		require.NoError(t, os.WriteFile(path, []byte("EESchema-LIBRARY Version 2.4\n#End Library\n"), 0o644))
		_, err := schlib.Load(path)
		assert.True(t, errors.IsFormatError(err))
	})

	t.Run("unterminated DEF", func(t *testing.T) {
		src := "EESchema-LIBRARY Version 2.4\nDEF X U 0 40 Y Y 1 F N\nF0 \"U\" 0 0 50 H V C CNN\n"
		_, err := schlib.Read("x.lib", strings.NewReader(src), nil)
		var fe *errors.FormatError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, 3, fe.Line)
	})
}

func TestRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		file  string
		write func(*schlib.Library, *bytes.Buffer) error
	}{
		{"passives.lib", func(l *schlib.Library, b *bytes.Buffer) error { return l.WriteLibrary(b) }},
		{"passives.dcm", func(l *schlib.Library, b *bytes.Buffer) error { return l.WriteDocumentation(b) }},
	} {
		t.Run(tc.file, func(t *testing.T) {
			lib, err := schlib.Load(filepath.Join("testdata", "passives.lib"))
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, tc.write(lib, &buf))

			want, err := os.ReadFile(filepath.Join("testdata", tc.file))
			require.NoError(t, err)
			assert.Equal(t, string(want), buf.String())
		})
	}
}

func TestComponentOperations(t *testing.T) {
	lib, err := schlib.Load(filepath.Join("testdata", "passives.lib"))
	require.NoError(t, err)

	t.Run("clone is deep", func(t *testing.T) {
		r, _ := lib.Get("R_0603")
		c := r.Clone()
		c.Fields[1].Value = "1k"
		c.SetDoc(schlib.Description, "changed")

		assert.Equal(t, "10k", r.Fields[1].Value)
		desc, _ := r.Doc(schlib.Description)
		assert.Equal(t, "Resistor, small SMD", desc)
	})

	t.Run("rename keeps tilde and updates comment", func(t *testing.T) {
		c, _ := lib.Get("C_0402")
		clone := c.Clone()
		clone.Rename("C_0603")

		assert.Equal(t, "C_0603", clone.Name)
		assert.Equal(t, "~C_0603", clone.Definition.Name)
		assert.Equal(t, "# C_0603", clone.Comments[1])
		assert.Equal(t, "# C_0402", c.Comments[1])
	})

	t.Run("insert after and remove", func(t *testing.T) {
		r, _ := lib.Get("R_0603")
		clone := r.Clone()
		clone.Rename("R_0805")

		require.NoError(t, lib.InsertAfter("R_0603", clone))
		assert.Equal(t, []string{"R_0603", "R_0805", "C_0402"}, lib.Names())

		err := lib.InsertAfter("R_0603", clone)
		assert.True(t, errors.IsValidationError(err))

		require.NoError(t, lib.Remove("R_0603"))
		assert.Equal(t, 0, lib.Index("R_0805"))
		assert.True(t, errors.IsNotFound(lib.Remove("R_0603")))
	})

	t.Run("remove field", func(t *testing.T) {
		c, _ := lib.Get("C_0402")
		clone := c.Clone()
		clone.RemoveField(4)
		assert.Len(t, clone.Fields, 4)
		clone.RemoveField(10)
		assert.Len(t, clone.Fields, 4)
		assert.Nil(t, clone.Field(10))
	})
}

func TestSave(t *testing.T) {
	path := copyFixture(t)
	lib, err := schlib.Load(path)
	require.NoError(t, err)

	r, err := lib.Get("R_0603")
	require.NoError(t, err)
	r.Fields[1].Value = "1k"
	r.SetDoc(schlib.Keywords, "")
	require.NoError(t, lib.Save())

	reloaded, err := schlib.Load(path)
	require.NoError(t, err)
	r, err = reloaded.Get("R_0603")
	require.NoError(t, err)
	assert.Equal(t, "1k", r.Fields[1].Value)
	_, ok := r.Doc(schlib.Keywords)
	assert.False(t, ok, "blank entries are not written")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temp files left behind")
}

func TestNew(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.lib")
	lib := schlib.New(path)
	require.NoError(t, lib.Add(&schlib.Component{
		Name:       "U1",
		Definition: schlib.Definition{Name: "U1", Reference: "U", Options: []string{"0", "40", "Y", "Y", "1", "F", "N"}},
		Fields:     []*schlib.Field{{Reference: "U", TextSize: 50, Visible: true}},
	}))
	assert.True(t, errors.IsValidationError(lib.Add(&schlib.Component{Name: "U1"})))
	require.NoError(t, lib.Save())

	_, err := os.Stat(schlib.DocPath(path))
	assert.True(t, os.IsNotExist(err))

	loaded, err := schlib.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"U1"}, loaded.Names())
}
