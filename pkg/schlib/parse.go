package schlib

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/agentstation/partsync/pkg/constants"
	"github.com/agentstation/partsync/pkg/errors"
	"github.com/agentstation/partsync/pkg/fields"
)

const maxLineSize = 1 << 20

// DocPath returns the documentation path paired with a library path.
func DocPath(libPath string) string {
	return strings.TrimSuffix(libPath, filepath.Ext(libPath)) + constants.DocumentationExt
}

// Load reads a library and, when present, its sibling .dcm file.
func Load(path string) (*Library, error) {
	if filepath.Ext(path) != constants.LibraryExt {
		return nil, errors.NewFormatError(path, "not a library file")
	}

	lf, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	defer func() { _ = lf.Close() }()

	var dcm io.Reader
	df, err := os.Open(DocPath(path))
	switch {
	case err == nil:
		defer func() { _ = df.Close() }()
		dcm = df
	case !os.IsNotExist(err):
		return nil, errors.WrapIO("read", DocPath(path), err)
	}

	lib, err := Read(path, lf, dcm)
	if err != nil {
		return nil, err
	}
	if lib.Len() == 0 {
		return nil, errors.NewFormatError(path, "library is empty")
	}
	return lib, nil
}

// Read parses a library from r and its documentation from dcm, which may be nil.
// path is used for error messages and as the save location.
func Read(path string, r io.Reader, dcm io.Reader) (*Library, error) {
	lib := &Library{path: path}
	if err := lib.parseLibrary(r); err != nil {
		return nil, err
	}
	if dcm != nil {
		lib.hasDocs = true
		if err := lib.parseDocumentation(DocPath(path), dcm); err != nil {
			return nil, err
		}
	}
	return lib, nil
}

func newScanner(r io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return s
}

func formatErr(path string, line int, msg string) error {
	return &errors.FormatError{Path: path, Line: line, Message: msg}
}

func (l *Library) parseLibrary(r io.Reader) error {
	s := newScanner(r)
	var (
		lineNo  int
		pending []string
		current *Component
		inBody  bool
		started bool
	)

	for s.Scan() {
		lineNo++
		line := strings.TrimRight(s.Text(), "\r")

		if lineNo == 1 {
			if !strings.HasPrefix(line, "EESchema-LIBRARY") {
				return formatErr(l.path, lineNo, "missing EESchema-LIBRARY header")
			}
			l.header = append(l.header, line)
			continue
		}

		if current != nil {
			trimmed := strings.TrimSpace(line)
			switch {
			case trimmed == "ENDDEF":
				l.components = append(l.components, current)
				current = nil
			case !inBody && isFieldLine(trimmed):
				f, err := parseField(trimmed)
				if err != nil {
					return formatErr(l.path, lineNo, err.Error())
				}
				current.Fields = append(current.Fields, f)
			default:
				inBody = true
				current.Body = append(current.Body, line)
			}
			continue
		}

		switch {
		case strings.HasPrefix(line, constants.LibraryFooter):
			l.trailer = pending
			pending = nil
		case strings.HasPrefix(line, "DEF "):
			def, err := parseDefinition(line)
			if err != nil {
				return formatErr(l.path, lineNo, err.Error())
			}
			current = &Component{
				Name:       strings.TrimPrefix(def.Name, "~"),
				Comments:   pending,
				Definition: def,
			}
			pending = nil
			inBody = false
			started = true
		case !started && !isComponentComment(line):
			l.header = append(l.header, line)
		default:
			pending = append(pending, line)
		}
	}
	if err := s.Err(); err != nil {
		return errors.WrapIO("read", l.path, err)
	}
	if lineNo == 0 {
		return formatErr(l.path, 0, "file is empty")
	}
	if current != nil {
		return formatErr(l.path, lineNo, "unterminated DEF "+current.Name)
	}
	if pending != nil {
		l.trailer = append(l.trailer, pending...)
	}
	return nil
}

// isComponentComment matches the "#" lines KiCad writes above a DEF block
// but not the "#encoding" header line.
func isComponentComment(line string) bool {
	return strings.HasPrefix(line, "#") && !strings.HasPrefix(line, "#encoding")
}

func isFieldLine(line string) bool {
	if len(line) < 2 || line[0] != 'F' {
		return false
	}
	end := strings.IndexByte(line, ' ')
	if end < 2 {
		return false
	}
	_, err := strconv.Atoi(line[1:end])
	return err == nil
}

func parseDefinition(line string) (Definition, error) {
	tokens := tokenize(line)
	if len(tokens) < 3 {
		return Definition{}, errors.New("DEF line needs a name and a reference")
	}
	return Definition{
		Name:      fields.Unquote(tokens[1]),
		Reference: fields.Unquote(tokens[2]),
		Options:   tokens[3:],
	}, nil
}

// parseField reads `Fn "text" x y size orient vis hjust vjust ["label"]`.
func parseField(line string) (*Field, error) {
	tokens := tokenize(line)
	if len(tokens) < 9 {
		return nil, errors.New("field line has too few tokens: " + line)
	}

	index, _ := strconv.Atoi(tokens[0][1:])
	f := &Field{
		Orientation: tokens[5],
		Visible:     tokens[6] != "I",
		HJustify:    tokens[7],
		VJustify:    tokens[8],
	}
	text := fields.Unquote(tokens[1])
	if index == constants.ReferenceIndex {
		f.Reference = text
	} else {
		f.Value = text
	}

	var err error
	if f.PosX, err = strconv.Atoi(tokens[2]); err != nil {
		return nil, errors.New("invalid field x position: " + tokens[2])
	}
	if f.PosY, err = strconv.Atoi(tokens[3]); err != nil {
		return nil, errors.New("invalid field y position: " + tokens[3])
	}
	if f.TextSize, err = strconv.Atoi(tokens[4]); err != nil {
		f.TextSize = constants.DefaultTextSize
	}
	if len(tokens) > 9 {
		f.Label = fields.Unquote(tokens[9])
	}
	return f, nil
}

// tokenize splits on whitespace, keeping double-quoted strings (quotes
// included) as single tokens.
func tokenize(line string) []string {
	var (
		tokens  []string
		b       strings.Builder
		quoted  bool
		inToken bool
	)
	flush := func() {
		if inToken {
			tokens = append(tokens, b.String())
			b.Reset()
			inToken = false
		}
	}
	for _, r := range line {
		switch {
		case r == '"':
			b.WriteRune(r)
			inToken = true
			quoted = !quoted
		case (r == ' ' || r == '\t') && !quoted:
			flush()
		default:
			b.WriteRune(r)
			inToken = true
		}
	}
	flush()
	return tokens
}

func (l *Library) parseDocumentation(path string, r io.Reader) error {
	s := newScanner(r)
	var (
		lineNo  int
		current *docEntry
	)
	byName := make(map[string]*Component, len(l.components))
	for _, c := range l.components {
		byName[c.Name] = c
	}

	for s.Scan() {
		lineNo++
		line := strings.TrimRight(s.Text(), "\r")

		if lineNo == 1 {
			if !strings.HasPrefix(line, "EESchema-DOCLIB") {
				return formatErr(path, lineNo, "missing EESchema-DOCLIB header")
			}
			continue
		}

		switch {
		case strings.HasPrefix(line, "$CMP "):
			current = &docEntry{
				name: strings.TrimSpace(strings.TrimPrefix(line, "$CMP ")),
				doc:  NewDocumentation(),
			}
		case line == "$ENDCMP":
			if current == nil {
				return formatErr(path, lineNo, "$ENDCMP without $CMP")
			}
			if c, ok := byName[current.name]; ok {
				c.Documentation = current.doc
			} else {
				l.orphans = append(l.orphans, *current)
			}
			current = nil
		case current != nil:
			parseDocLine(current.doc, line)
		}
	}
	if err := s.Err(); err != nil {
		return errors.WrapIO("read", path, err)
	}
	if current != nil {
		return formatErr(path, lineNo, "unterminated $CMP "+current.name)
	}
	return nil
}

func parseDocLine(doc *Documentation, line string) {
	tag, text, _ := strings.Cut(line, " ")
	for _, key := range DocKeys {
		if docTags[key] == tag {
			doc.Set(key, strings.TrimSpace(text))
			return
		}
	}
	doc.extra = append(doc.extra, line)
}
