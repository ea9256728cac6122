package records_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/partsync/pkg/errors"
	"github.com/agentstation/partsync/pkg/fields"
	"github.com/agentstation/partsync/pkg/logging"
	"github.com/agentstation/partsync/pkg/records"
	"github.com/agentstation/partsync/pkg/schlib"
	"github.com/agentstation/partsync/pkg/tabular"
)

const testLibrary = `EESchema-LIBRARY Version 2.4
#encoding utf-8
#
# R_0603
#
DEF R_0603 R 0 0 N Y 1 F N
F0 "R" 0 50 50 H V C CNN
F1 "10k" 0 -50 50 H V C CNN
F2 "Resistor_SMD:R_0603" 0 -150 50 H I C CNN
F3 "" 0 0 50 H I C CNN
F4 "A" 0 -250 50 H I C CNN "Rev"
F5 "1%" 0 -350 50 H I C CNN "Spec"
F6 "0.1W" 0 -450 50 H I C CNN "Spec"
F7 "orphan" 0 -550 50 H I C CNN ""
ENDDEF
#
#End Library
`

const testDocs = `EESchema-DOCLIB  Version 2.0
#
$CMP R_0603
D Resistor
$ENDCMP
#
#End Doc Library
`

func loadLibrary(t *testing.T) *schlib.Library {
	t.Helper()
	lib, err := schlib.Read("test.lib", strings.NewReader(testLibrary), strings.NewReader(testDocs))
	require.NoError(t, err)
	return lib
}

func TestProjectorLibrary(t *testing.T) {
	lib := loadLibrary(t)
	comp, err := lib.Get("R_0603")
	require.NoError(t, err)

	tl := logging.NewTestLogger(t)
	p := records.NewProjector(nil, records.WithLogger(tl.Logger))
	r, err := p.Library(comp)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"name", "description_doc", "keywords_doc", "datasheet_doc",
		"reference", "value", "footprint", "empty", "rev", "spec", "spec2",
	}, r.Keys())
	assert.Equal(t, "R_0603", r.Name())
	assert.Equal(t, "Resistor", r.Value("description_doc"))
	assert.Equal(t, "", r.Value("keywords_doc"), "absent documentation projects as empty")
	assert.True(t, r.Has("keywords_doc"))
	assert.Equal(t, "R", r.Value("reference"))
	assert.Equal(t, "1%", r.Value("spec"))
	assert.Equal(t, "0.1W", r.Value("spec2"), "duplicate labels never overwrite")

	assert.Equal(t, "Spec", p.Lookup().Label("spec"))
	assert.Equal(t, "Rev", p.Lookup().Label("rev"))
	tl.AssertContains(t, "Skipping unlabelled field")
}

func TestFieldKeys(t *testing.T) {
	lib := loadLibrary(t)
	comp, _ := lib.Get("R_0603")

	keys := records.FieldKeys(comp)
	assert.Equal(t, []string{"reference", "value", "footprint", "empty", "rev", "spec", "spec2", ""}, keys)

	comp.Fields[5].Label = "Tolerance"
	keys = records.FieldKeys(comp)
	assert.Equal(t, "tolerance", keys[5])
	assert.Equal(t, "spec", keys[6], "keys follow live labels")
}

func TestProjectorLibraryMissingName(t *testing.T) {
	p := records.NewProjector(nil, records.WithLogger(logging.NewNopLogger()))
	_, err := p.Library(&schlib.Component{})
	assert.True(t, errors.IsMissingName(err))

	lib := schlib.New("x.lib")
	require.NoError(t, lib.Add(&schlib.Component{Name: "", Fields: []*schlib.Field{{Reference: "U"}}}))
	require.NoError(t, lib.Add(&schlib.Component{Name: "U1", Fields: []*schlib.Field{{Reference: "U"}}}))
	recs := p.LibraryRecords(lib)
	require.Len(t, recs, 1)
	assert.Equal(t, "U1", recs[0].Name())
}

func TestProjectorCSV(t *testing.T) {
	lookup := fields.NewLookupTable()
	p := records.NewProjector(lookup, records.WithLogger(logging.NewNopLogger()))

	header := []string{"name", "Value", "Part Number", "", "spec", "Spec"}
	r, err := p.CSV(header, []string{"R_0603", "'100", "'0042", "ignored", "1%"})
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "value", "part_number", "spec", "spec2"}, r.Keys())
	assert.Equal(t, "100", r.Value("value"), "anti-autoformat quote is stripped")
	assert.Equal(t, "0042", r.Value("part_number"))
	assert.Equal(t, "", r.Value("spec2"), "short rows are padded")
	assert.Equal(t, "Part Number", lookup.Label("part_number"))

	_, err = p.CSV(header, []string{""})
	assert.True(t, errors.IsMissingName(err))
}

func TestProjectorCSVRecords(t *testing.T) {
	p := records.NewProjector(nil, records.WithLogger(logging.NewNopLogger()))
	table := &tabular.Table{
		Header: []string{"name", "value"},
		Rows:   [][]string{{"R1", "1k"}, {"", "2k"}, {"R3", "3k"}},
	}
	recs := p.CSVRecords(table)
	require.Len(t, recs, 2)
	assert.Equal(t, "R3", recs[1].Name())
}

func TestWithGlobalField(t *testing.T) {
	recs := []*records.Record{
		records.FromPairs("name", "R1"),
		records.FromPairs("name", "R2", "manufacturer", ""),
		records.FromPairs("name", "R3", "manufacturer", "Yageo"),
	}
	lookup := fields.NewLookupTable()
	records.WithGlobalField(recs, lookup, "Manufacturer", "Vishay")

	assert.Equal(t, "Vishay", recs[0].Value("manufacturer"))
	assert.Equal(t, "Vishay", recs[1].Value("manufacturer"))
	assert.Equal(t, "Yageo", recs[2].Value("manufacturer"))
	assert.Equal(t, "Manufacturer", lookup.Label("manufacturer"))
}

func TestHeaderAndRows(t *testing.T) {
	recs := []*records.Record{
		records.FromPairs("name", "R1", "value", "1k"),
		records.FromPairs("name", "C1", "voltage", "16V", "value", "1u"),
	}
	header := records.Header(recs)
	assert.Equal(t, []string{"name", "value", "voltage"}, header)
	assert.Equal(t, [][]string{{"R1", "1k", ""}, {"C1", "1u", "16V"}}, records.Rows(recs, header))
	assert.Equal(t, map[string]int{"R1": 0, "C1": 1}, records.Index(recs))
}
