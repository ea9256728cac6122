// Package tabular reads and writes the CSV side of a reconciliation.
//
// Cells that look numeric are written with a leading single quote so
// spreadsheet applications keep them as text (leading zeros, "1e3" and
// long part numbers survive a round trip). Unprotect strips that quote.
package tabular

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/agentstation/partsync/pkg/constants"
	"github.com/agentstation/partsync/pkg/errors"
)

var numeric = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// Table is a header and its data rows.
type Table struct {
	Path   string
	Header []string
	Rows   [][]string
}

// IsNumeric reports whether a spreadsheet would reformat s as a number.
func IsNumeric(s string) bool {
	return numeric.MatchString(s)
}

// Protect prefixes numeric-looking cells with a single quote.
func Protect(cell string) string {
	if IsNumeric(cell) {
		return "'" + cell
	}
	return cell
}

// Unprotect removes the quote added by Protect. Other cells are unchanged.
func Unprotect(cell string) string {
	if rest, ok := strings.CutPrefix(cell, "'"); ok && IsNumeric(rest) {
		return rest
	}
	return cell
}

// Read loads a CSV file.
func Read(path string) (*Table, error) {
	if filepath.Ext(path) != constants.CSVExt {
		return nil, errors.NewFormatError(path, "not a CSV file")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	defer func() { _ = f.Close() }()

	t, err := Decode(f)
	if err != nil {
		var fe *errors.FormatError
		if errors.As(err, &fe) {
			fe.Path = path
			return nil, fe
		}
		return nil, errors.WrapIO("read", path, err)
	}
	t.Path = path
	return t, nil
}

// Decode parses CSV from r. The first record is the header.
func Decode(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.NewFormatError("", "file is empty")
	}
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return nil, &errors.FormatError{Line: pe.Line, Message: pe.Err.Error(), Err: err}
		}
		return nil, err
	}
	if len(header) == 0 || (len(header) == 1 && strings.TrimSpace(header[0]) == "") {
		return nil, errors.NewFormatError("", "header is empty")
	}

	rows, err := cr.ReadAll()
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return nil, &errors.FormatError{Line: pe.Line, Message: pe.Err.Error(), Err: err}
		}
		return nil, err
	}
	return &Table{Header: header, Rows: rows}, nil
}

// Exists reports whether path is a readable CSV file with a header.
func Exists(path string) bool {
	_, err := Read(path)
	return err == nil
}

// Option configures Write.
type Option func(*writeOptions)

type writeOptions struct {
	protect bool
}

// WithProtect toggles the leading-quote protection of numeric cells.
func WithProtect(enabled bool) Option {
	return func(o *writeOptions) {
		o.protect = enabled
	}
}

// Write creates or truncates path and writes header and rows. The parent
// directory must exist.
func Write(path string, header []string, rows [][]string, opts ...Option) error {
	if filepath.Ext(path) != constants.CSVExt {
		return errors.NewFormatError(path, "not a CSV file")
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		return errors.WrapIO("write", path, err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	if err := Encode(f, header, rows, opts...); err != nil {
		_ = f.Close()
		return errors.WrapIO("write", path, err)
	}
	if err := f.Close(); err != nil {
		return errors.WrapIO("close", path, err)
	}
	return nil
}

// Encode writes header and rows as CSV to w.
func Encode(w io.Writer, header []string, rows [][]string, opts ...Option) error {
	o := &writeOptions{protect: true}
	for _, opt := range opts {
		opt(o)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		out := row
		if o.protect {
			out = make([]string, len(row))
			for i, cell := range row {
				out[i] = Protect(cell)
			}
		}
		if err := cw.Write(out); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
