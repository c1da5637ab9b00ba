package cli

import (
	"os"
	"path/filepath"

	"github.com/toyz/beangen/internal/utils"
)

// Cleaner handles cleaning up generated files
type Cleaner struct {
	scanner       *DirectoryScanner
	fileProcessor *utils.FileProcessor
}

// NewCleaner creates a new cleaner
func NewCleaner(fileProcessor *utils.FileProcessor) *Cleaner {
	if fileProcessor == nil {
		fileProcessor = utils.NewFileProcessor()
	}
	return &Cleaner{
		scanner:       NewDirectoryScanner(fileProcessor),
		fileProcessor: fileProcessor,
	}
}

// CleanGeneratedFiles removes every .java file under directories that carries
// marker, then prunes the directories left empty. Hand-written files are kept.
func (c *Cleaner) CleanGeneratedFiles(directories []string, marker string) ([]string, error) {
	roots, err := c.scanner.ResolveRoots(directories)
	if err != nil {
		return nil, err
	}

	removed, err := c.fileProcessor.CleanGenerated(roots, marker)
	if err != nil {
		return removed, err
	}

	for _, file := range removed {
		pruneEmptyParents(filepath.Dir(file), roots)
	}
	return removed, nil
}

// pruneEmptyParents removes dir and its ancestors while they are empty, stopping at a root
func pruneEmptyParents(dir string, roots []string) {
	for {
		abs, err := filepath.Abs(dir)
		if err != nil || isRoot(abs, roots) || !underAny(abs, roots) {
			return
		}

		entries, err := os.ReadDir(abs)
		if err != nil || len(entries) > 0 {
			return
		}
		if err := os.Remove(abs); err != nil {
			return
		}
		dir = filepath.Dir(abs)
	}
}

func isRoot(dir string, roots []string) bool {
	for _, root := range roots {
		if dir == root {
			return true
		}
	}
	return false
}
