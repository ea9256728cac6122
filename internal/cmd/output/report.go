package output

import (
	"fmt"
	"io"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/partsync/pkg/applier"
	"github.com/agentstation/partsync/pkg/differ"
)

var title = cases.Title(language.English)

// ReportData lays a report out as one row per change.
func ReportData(library string, report *differ.Report) Data {
	d := Data{
		Title:           library,
		Headers:         []string{"Component", "Change", "Field", "Old", "New"},
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignLeft},
	}
	if report == nil {
		return d
	}
	for _, c := range report.Changes() {
		d.Rows = append(d.Rows, []string{c.Component, title.String(string(c.Type)), c.Field, c.OldValue, c.NewValue})
	}
	return d
}

// ResultData lays the stages of an update run out as a table.
func ResultData(library string, res *applier.Result) Data {
	d := Data{
		Title:           library,
		Headers:         []string{"Stage", "Attempted", "Applied", "Skipped"},
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignRight, AlignCenter},
	}
	if res == nil {
		return d
	}
	for _, st := range res.Stages {
		skipped := ""
		if st.Skipped {
			skipped = "yes"
		}
		d.Rows = append(d.Rows, []string{
			title.String(st.Name),
			strconv.Itoa(st.Attempted),
			strconv.Itoa(st.Applied),
			skipped,
		})
	}
	return d
}

// LibraryReport pairs a library name with its report for structured output.
type LibraryReport struct {
	Library string         `json:"library" yaml:"library"`
	Summary differ.Summary `json:"summary" yaml:"summary"`
	Report  *differ.Report `json:"report" yaml:"report"`
}

// TableData implements Tabular.
func (l LibraryReport) TableData() Data {
	return ReportData(l.Library, l.Report)
}

// LibraryResult pairs a library name with its update result for structured output.
type LibraryResult struct {
	Library string          `json:"library" yaml:"library"`
	Result  *applier.Result `json:"result" yaml:"result"`
	Errors  []string        `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// NewLibraryResult collects the error messages of res.
func NewLibraryResult(library string, res *applier.Result) LibraryResult {
	lr := LibraryResult{Library: library, Result: res}
	if res != nil {
		for _, err := range res.Errors {
			lr.Errors = append(lr.Errors, err.Error())
		}
	}
	return lr
}

// TableData implements Tabular.
func (l LibraryResult) TableData() Data {
	return ResultData(l.Library, l.Result)
}

// PrintReport writes report in the requested format. The table format
// prints the detailed human-readable view.
func PrintReport(w io.Writer, format Format, library string, report *differ.Report) error {
	switch format {
	case FormatTable, "":
		if _, err := fmt.Fprintf(w, "%s\n", library); err != nil {
			return err
		}
		report.Print(w)
		return nil
	default:
		lr := LibraryReport{Library: library, Report: report}
		if report != nil {
			lr.Summary = report.Summary()
		}
		return NewFormatter(format).Format(w, lr)
	}
}
