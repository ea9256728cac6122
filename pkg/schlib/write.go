package schlib

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/partsync/pkg/constants"
	"github.com/agentstation/partsync/pkg/errors"
	"github.com/agentstation/partsync/pkg/fields"
)

// Save writes the library and its documentation back to Path. Each file is
// written to a temporary sibling and renamed into place.
func (l *Library) Save() error {
	if l.path == "" {
		return errors.NewValidationError("path", "", "library has no path")
	}
	if err := writeAtomic(l.path, l.WriteLibrary); err != nil {
		return err
	}
	if !l.hasDocs && !l.anyDocs() {
		return nil
	}
	return writeAtomic(DocPath(l.path), l.WriteDocumentation)
}

func (l *Library) anyDocs() bool {
	for _, c := range l.components {
		if !c.Documentation.Empty() {
			return true
		}
	}
	return len(l.orphans) > 0
}

func writeAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.WrapIO("create", "temp file", err)
	}
	tmpPath := tmp.Name()

	w := bufio.NewWriter(tmp)
	if err := write(w); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return errors.WrapIO("write", path, err)
	}
	if err := w.Flush(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return errors.WrapIO("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("close", path, err)
	}
	if err := os.Chmod(tmpPath, constants.FilePermissions); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("chmod", path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("move", path, err)
	}
	return nil
}

// WriteLibrary serializes the .lib contents to w.
func (l *Library) WriteLibrary(w io.Writer) error {
	ew := &errWriter{w: w}
	header := l.header
	if len(header) == 0 {
		header = []string{constants.LibraryHeader, constants.LibraryEncoding}
	}
	for _, line := range header {
		ew.line(line)
	}
	for _, c := range l.components {
		writeComponent(ew, c)
	}
	for _, line := range l.trailer {
		ew.line(line)
	}
	ew.line(constants.LibraryFooter)
	return ew.err
}

func writeComponent(ew *errWriter, c *Component) {
	for _, line := range c.Comments {
		ew.line(line)
	}
	def := []string{"DEF", c.Definition.Name, c.Definition.Reference}
	def = append(def, c.Definition.Options...)
	ew.line(strings.Join(def, " "))
	for i, f := range c.Fields {
		ew.line(formatField(i, f))
	}
	for _, line := range c.Body {
		ew.line(line)
	}
	ew.line("ENDDEF")
}

func formatField(index int, f *Field) string {
	text := f.Value
	if index == constants.ReferenceIndex {
		text = f.Reference
	}
	vis := "V"
	if !f.Visible {
		vis = "I"
	}
	line := fmt.Sprintf("F%d %s %d %d %d %s %s %s %s",
		index, fields.Quote(text), f.PosX, f.PosY, f.TextSize,
		orDefault(f.Orientation, "H"), vis,
		orDefault(f.HJustify, "C"), orDefault(f.VJustify, "CNN"))
	if index > constants.FirstNamedField || f.Label != "" {
		line += " " + fields.Quote(f.Label)
	}
	return line
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// WriteDocumentation serializes the .dcm contents to w.
func (l *Library) WriteDocumentation(w io.Writer) error {
	ew := &errWriter{w: w}
	ew.line(constants.DocumentationHeader)
	ew.line("#")
	for _, c := range l.components {
		if c.Documentation.Empty() {
			continue
		}
		writeDoc(ew, c.Name, c.Documentation)
	}
	for _, o := range l.orphans {
		writeDoc(ew, o.name, o.doc)
	}
	ew.line(constants.DocumentationFooter)
	return ew.err
}

func writeDoc(ew *errWriter, name string, doc *Documentation) {
	ew.line("$CMP " + name)
	for _, key := range DocKeys {
		if v, ok := doc.Get(key); ok && v != "" {
			ew.line(docTags[key] + " " + v)
		}
	}
	for _, line := range doc.extra {
		ew.line(line)
	}
	ew.line("$ENDCMP")
	ew.line("#")
}

// errWriter keeps the first write error so callers check once.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) line(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s+"\n")
}
