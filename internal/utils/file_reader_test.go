package utils

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
)

func TestFileReaderCaching(t *testing.T) {
	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "PersonTemplate.java")
	testContent := `package com.x;

@Bean
public class PersonTemplate {
	private int id;
}
`

	if err := os.WriteFile(testFile, []byte(testContent), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	reader := NewFileReader()

	content1, err := reader.ReadFile(testFile)
	if err != nil {
		t.Fatalf("First read failed: %v", err)
	}
	content2, err := reader.ReadFile(testFile)
	if err != nil {
		t.Fatalf("Second read failed: %v", err)
	}
	if content1 != testContent || content2 != testContent {
		t.Error("Expected both reads to return the file content")
	}

	stats := reader.GetCacheStats()
	if stats.Size != 1 || stats.Hits != 1 {
		t.Errorf("Expected 1 cached file and 1 hit, got %+v", stats)
	}

	updated := testContent + "// touched\n"
	if err := os.WriteFile(testFile, []byte(updated), 0644); err != nil {
		t.Fatalf("Failed to update test file: %v", err)
	}

	content3, err := reader.ReadFile(testFile)
	if err != nil {
		t.Fatalf("Third read failed: %v", err)
	}
	if content3 != updated {
		t.Error("Expected updated content after file modification")
	}

	reader.InvalidateFile(testFile)
	if size := reader.GetCacheStats().Size; size != 0 {
		t.Errorf("Expected 0 cached files after invalidation, got %d", size)
	}
}

func TestFileReaderContains(t *testing.T) {
	tempDir := t.TempDir()
	marked := filepath.Join(tempDir, "A.java")
	plain := filepath.Join(tempDir, "B.java")
	os.WriteFile(marked, []byte("@Bean class ATemplate {}"), 0644)
	os.WriteFile(plain, []byte("class B {}"), 0644)

	reader := NewFileReader()

	ok, err := reader.Contains(marked, "@Bean")
	if err != nil || !ok {
		t.Errorf("Expected marker in %s, got ok=%v err=%v", marked, ok, err)
	}
	ok, err = reader.Contains(plain, "@Bean")
	if err != nil || ok {
		t.Errorf("Expected no marker in %s, got ok=%v err=%v", plain, ok, err)
	}
}

func TestFileReaderMatches(t *testing.T) {
	tempDir := t.TempDir()
	qualified := filepath.Join(tempDir, "A.java")
	plain := filepath.Join(tempDir, "B.java")
	os.WriteFile(qualified, []byte("@au.id.villar.utils.beangen.Bean class ATemplate {}"), 0644)
	os.WriteFile(plain, []byte("class B {}"), 0644)

	reader := NewFileReader()
	re := regexp.MustCompile(`\.Bean\b`)

	ok, err := reader.Matches(qualified, re)
	if err != nil || !ok {
		t.Errorf("Expected a match in %s, got ok=%v err=%v", qualified, ok, err)
	}
	ok, err = reader.Matches(plain, re)
	if err != nil || ok {
		t.Errorf("Expected no match in %s, got ok=%v err=%v", plain, ok, err)
	}
	if _, err := reader.Matches(filepath.Join(tempDir, "missing.java"), re); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestFileReaderValidation(t *testing.T) {
	reader := NewFileReader()

	if _, err := reader.ReadFile(""); err == nil {
		t.Error("Expected error for empty path")
	}
	if _, err := reader.ReadFile(filepath.Join(t.TempDir(), "missing.java")); err == nil {
		t.Error("Expected error for missing file")
	}
	if _, err := reader.ReadFile("src/../../etc/passwd"); err == nil {
		t.Error("Expected error for path traversal")
	}
}
