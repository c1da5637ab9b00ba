package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/toyz/beangen/internal/errors"
	"github.com/toyz/beangen/internal/utils"
)

// DirectoryScanner resolves source roots and finds the Java files under them
type DirectoryScanner struct {
	fileProcessor *utils.FileProcessor
}

// NewDirectoryScanner creates a new directory scanner sharing the processor's file cache
func NewDirectoryScanner(fileProcessor *utils.FileProcessor) *DirectoryScanner {
	if fileProcessor == nil {
		fileProcessor = utils.NewFileProcessor()
	}
	return &DirectoryScanner{
		fileProcessor: fileProcessor,
	}
}

// ResolveRoots turns the given directories into absolute paths. A trailing
// "/..." is accepted and dropped since every root is walked recursively.
func (s *DirectoryScanner) ResolveRoots(rootDirs []string) ([]string, error) {
	var cleanDirs []string

	for _, rootDir := range rootDirs {
		baseDir := strings.TrimSuffix(filepath.ToSlash(rootDir), "/...")
		if baseDir == "" || baseDir == "..." {
			baseDir = "."
		}

		cleanPath, err := filepath.Abs(filepath.FromSlash(baseDir))
		if err != nil {
			return nil, errors.WrapWithOperation("resolve", "path "+rootDir, err)
		}

		cleanDirs = append(cleanDirs, cleanPath)
	}

	return cleanDirs, nil
}

// ScanJavaFiles returns the Java files under rootDirs in lexical order per root.
// Files matching an exclude pattern or lying under one of skipDirs are left out.
func (s *DirectoryScanner) ScanJavaFiles(rootDirs, excludes []string, skipDirs ...string) ([]string, error) {
	roots, err := s.ResolveRoots(rootDirs)
	if err != nil {
		return nil, err
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, errors.WrapFileSystemError("scan", root, err).
				WithSuggestion("Check that the source directory exists")
		}
		if !info.IsDir() {
			return nil, errors.FileSystemError("scan", root, "not a directory")
		}
	}

	files, err := s.fileProcessor.FindJavaFiles(roots, excludes)
	if err != nil {
		return nil, errors.Wrap(errors.FileSystemErrorCode, "source scan failed", err)
	}

	skipped, err := s.ResolveRoots(skipDirs)
	if err != nil {
		return nil, err
	}
	if len(skipped) == 0 {
		return files, nil
	}

	kept := files[:0]
	for _, file := range files {
		if !underAny(file, skipped) {
			kept = append(kept, file)
		}
	}
	return kept, nil
}

func underAny(path string, dirs []string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for _, dir := range dirs {
		if abs == dir || strings.HasPrefix(abs, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
