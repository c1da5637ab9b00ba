package generator

import (
	"fmt"
	"strings"
)

// sourceWriter accumulates indented source lines without terminators
type sourceWriter struct {
	indent string
	lines  []string
}

func newSourceWriter(indent string) *sourceWriter {
	return &sourceWriter{indent: indent}
}

// line appends text indented by depth units
func (w *sourceWriter) line(depth int, text string) {
	w.lines = append(w.lines, strings.Repeat(w.indent, depth)+text)
}

// linef appends a formatted line indented by depth units
func (w *sourceWriter) linef(depth int, format string, args ...interface{}) {
	w.line(depth, fmt.Sprintf(format, args...))
}

// blank appends an empty line
func (w *sourceWriter) blank() {
	w.lines = append(w.lines, "")
}

// block appends header, body lines one level deeper, and a closing brace
func (w *sourceWriter) block(depth int, header string, body ...string) {
	w.line(depth, header+" {")
	for _, b := range body {
		w.line(depth+1, b)
	}
	w.line(depth, "}")
}
