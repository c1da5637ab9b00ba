package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/toyz/beangen/internal/errors"
	"github.com/toyz/beangen/internal/models"
)

// WriteOutcome says what happened to one generated file
type WriteOutcome int

const (
	// Written means the file was created or its content replaced
	Written WriteOutcome = iota
	// Unchanged means the file already held identical content
	Unchanged
	// Printed means the content went to the dry-run output
	Printed
)

func (o WriteOutcome) String() string {
	switch o {
	case Unchanged:
		return "unchanged"
	case Printed:
		return "printed"
	default:
		return "written"
	}
}

// FileWriter stores generated sources under an output root. It is safe for concurrent use.
type FileWriter struct {
	root   string
	dryRun bool
	out    io.Writer
	mu     sync.Mutex
}

// NewFileWriter creates a writer rooted at root. With dryRun set, sources are
// printed to out instead of being written.
func NewFileWriter(root string, dryRun bool, out io.Writer) *FileWriter {
	if out == nil {
		out = os.Stdout
	}
	return &FileWriter{root: root, dryRun: dryRun, out: out}
}

// Destination returns where src is written: <root>/<package path>/<name>.java
func (w *FileWriter) Destination(src *models.GeneratedSource) string {
	return filepath.Join(w.root, filepath.FromSlash(src.Path))
}

// Write stores src and returns its destination
func (w *FileWriter) Write(src *models.GeneratedSource) (string, WriteOutcome, error) {
	dest := w.Destination(src)

	if w.dryRun {
		w.mu.Lock()
		defer w.mu.Unlock()
		if _, err := fmt.Fprintf(w.out, "// %s\n%s\n", dest, src.Content); err != nil {
			return dest, Printed, errors.WrapFileSystemError("print", dest, err)
		}
		return dest, Printed, nil
	}

	content := []byte(src.Content)
	if existing, err := os.ReadFile(dest); err == nil && bytes.Equal(existing, content) {
		return dest, Unchanged, nil
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return dest, Written, errors.WrapFileSystemError("create", filepath.Dir(dest), err).
			WithSuggestion("Check that the output directory is writable")
	}

	if err := os.WriteFile(dest, content, 0644); err != nil {
		return dest, Written, errors.WrapFileSystemError("write", dest, err).
			WithSuggestion("Check write permissions for the output directory")
	}

	return dest, Written, nil
}
