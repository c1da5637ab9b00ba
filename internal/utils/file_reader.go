package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// FileReader reads source files, caching contents until a file changes
type FileReader struct {
	contentCache *Cache[string, string]
}

// NewFileReader creates a new FileReader instance with caching
func NewFileReader() *FileReader {
	return &FileReader{
		contentCache: NewCache[string, string](),
	}
}

// ReadFile reads a file and returns its contents as a string with caching
func (fr *FileReader) ReadFile(filePath string) (string, error) {
	cleanPath, err := fr.validateAndCleanPath(filePath)
	if err != nil {
		return "", err
	}

	return fr.contentCache.GetOrLoad(cleanPath, cleanPath, func() (string, error) {
		content, err := os.ReadFile(cleanPath)
		if err != nil {
			return "", fmt.Errorf("failed to read file %s: %w", filepath.Base(cleanPath), err)
		}
		return string(content), nil
	})
}

// Contains reports whether the file's contents include marker
func (fr *FileReader) Contains(filePath, marker string) (bool, error) {
	content, err := fr.ReadFile(filePath)
	if err != nil {
		return false, err
	}
	return strings.Contains(content, marker), nil
}

// Matches reports whether the file's contents contain a match of re
func (fr *FileReader) Matches(filePath string, re *regexp.Regexp) (bool, error) {
	content, err := fr.ReadFile(filePath)
	if err != nil {
		return false, err
	}
	return re.MatchString(content), nil
}

// InvalidateFile removes a specific file from the cache
func (fr *FileReader) InvalidateFile(filePath string) {
	fr.contentCache.Delete(filepath.Clean(filePath))
}

// GetCacheStats returns statistics about the content cache
func (fr *FileReader) GetCacheStats() CacheStats {
	return fr.contentCache.GetStats()
}

// validateAndCleanPath validates and cleans a file path
func (fr *FileReader) validateAndCleanPath(filePath string) (string, error) {
	if err := NotEmpty("filePath")(filePath); err != nil {
		return "", fmt.Errorf("file path %w", err)
	}

	cleanPath := filepath.Clean(filePath)

	// .. is only allowed as a leading relative segment
	if strings.Contains(cleanPath, "..") && !strings.HasPrefix(cleanPath, "..") {
		return "", fmt.Errorf("path traversal not allowed in file path: %s", filePath)
	}

	if _, err := os.Stat(cleanPath); os.IsNotExist(err) {
		return "", fmt.Errorf("file does not exist: %s", cleanPath)
	}

	return cleanPath, nil
}
