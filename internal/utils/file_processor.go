package utils

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/toyz/beangen/internal/errors"
)

// FileProcessor walks source trees and manages generated files
type FileProcessor struct {
	fileReader *FileReader
}

// NewFileProcessor creates a new file processor
func NewFileProcessor() *FileProcessor {
	return &FileProcessor{
		fileReader: NewFileReader(),
	}
}

// NewFileProcessorWithReader creates a file processor with an existing FileReader
func NewFileProcessorWithReader(reader *FileReader) *FileProcessor {
	return &FileProcessor{
		fileReader: reader,
	}
}

// FileFilter defines a function that determines whether a file should be processed
type FileFilter func(path string, info fs.DirEntry) bool

// DirectoryFilter defines a function that determines whether a directory should be processed
type DirectoryFilter func(path string, info fs.DirEntry) bool

// FileWalkOptions configures file walking behavior
type FileWalkOptions struct {
	FileFilter      FileFilter
	DirectoryFilter DirectoryFilter

	// Excludes are doublestar patterns matched against the slash-separated
	// path relative to the walk root and against the base name
	Excludes []string

	SkipErrors bool
}

// JavaFileFilter accepts .java compilation units, skipping package-info and module-info
func JavaFileFilter() FileFilter {
	return func(path string, info fs.DirEntry) bool {
		if info.IsDir() {
			return false
		}

		name := info.Name()
		return strings.HasSuffix(name, ".java") &&
			name != "package-info.java" &&
			name != "module-info.java"
	}
}

// DefaultDirectoryFilter skips common directories that shouldn't contain source code
func DefaultDirectoryFilter() DirectoryFilter {
	skipDirs := map[string]bool{
		"vendor":       true,
		"node_modules": true,
		".git":         true,
		".svn":         true,
		".hg":          true,
		"testdata":     true,
		"build":        true,
		"dist":         true,
		"target":       true,
		"out":          true,
	}

	return func(path string, info fs.DirEntry) bool {
		if !info.IsDir() {
			return true
		}

		name := info.Name()

		// Skip hidden directories
		if strings.HasPrefix(name, ".") && name != "." && name != ".." {
			return false
		}

		return !skipDirs[name]
	}
}

// ValidatePatterns reports the first malformed exclude pattern
func ValidatePatterns(patterns []string) error {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return fmt.Errorf("invalid glob pattern %q", pattern)
		}
	}
	return nil
}

// MatchesAny reports whether rel (relative to a walk root) or its base name matches a pattern
func MatchesAny(patterns []string, rel string) bool {
	rel = filepath.ToSlash(rel)
	base := filepath.Base(rel)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}

// WalkFiles walks a directory tree and returns matching files in lexical order
func (fp *FileProcessor) WalkFiles(rootDir string, options FileWalkOptions) ([]string, error) {
	var matchedFiles []string

	err := filepath.WalkDir(rootDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if options.SkipErrors {
				return nil
			}
			return err
		}

		if path != rootDir && len(options.Excludes) > 0 {
			if rel, relErr := filepath.Rel(rootDir, path); relErr == nil && MatchesAny(options.Excludes, rel) {
				if entry.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if entry.IsDir() {
			if path != rootDir && options.DirectoryFilter != nil && !options.DirectoryFilter(path, entry) {
				return filepath.SkipDir
			}
			return nil
		}

		if options.FileFilter == nil || options.FileFilter(path, entry) {
			matchedFiles = append(matchedFiles, path)
		}
		return nil
	})

	sort.Strings(matchedFiles)
	return matchedFiles, err
}

// FindJavaFiles walks every root with the Java and default directory filters,
// dropping duplicates reached through overlapping roots
func (fp *FileProcessor) FindJavaFiles(rootDirs []string, excludes []string) ([]string, error) {
	options := FileWalkOptions{
		FileFilter:      JavaFileFilter(),
		DirectoryFilter: DefaultDirectoryFilter(),
		Excludes:        excludes,
	}

	seen := make(map[string]bool)
	var files []string
	for _, root := range rootDirs {
		found, err := fp.WalkFiles(root, options)
		if err != nil {
			return nil, errors.WrapFileSystemError("walk", root, err)
		}
		for _, file := range found {
			abs, err := filepath.Abs(file)
			if err != nil {
				abs = file
			}
			if seen[abs] {
				continue
			}
			seen[abs] = true
			files = append(files, file)
		}
	}
	return files, nil
}

// CleanGenerated removes .java files under each directory whose contents
// include marker and returns the removed paths. Missing directories are skipped.
func (fp *FileProcessor) CleanGenerated(baseDirs []string, marker string) ([]string, error) {
	var removedFiles []string

	for _, baseDir := range baseDirs {
		if _, err := os.Stat(baseDir); os.IsNotExist(err) {
			continue
		}

		files, err := fp.WalkFiles(baseDir, FileWalkOptions{FileFilter: JavaFileFilter(), SkipErrors: true})
		if err != nil {
			return removedFiles, errors.WrapFileSystemError("clean", baseDir, err)
		}

		for _, file := range files {
			generated, err := fp.fileReader.Contains(file, marker)
			if err != nil || !generated {
				continue
			}
			if err := os.Remove(file); err != nil {
				return removedFiles, errors.WrapFileSystemError("remove", file, err)
			}
			fp.fileReader.InvalidateFile(file)
			removedFiles = append(removedFiles, file)
		}
	}

	return removedFiles, nil
}

// GetFileReader returns the underlying FileReader
func (fp *FileProcessor) GetFileReader() *FileReader {
	return fp.fileReader
}
