package utils

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create dir for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create test file %s: %v", name, err)
		}
	}
}

func relAll(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			t.Fatalf("rel %s: %v", p, err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestJavaFileFilter(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{
		"PersonTemplate.java": "class PersonTemplate {}",
		"package-info.java":   "package com.x;",
		"module-info.java":    "module x {}",
		"README.md":           "# README",
		"Util.kt":             "object Util",
	})

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("Failed to read test directory: %v", err)
	}

	filter := JavaFileFilter()
	var matched []string
	for _, entry := range entries {
		if filter(filepath.Join(tmpDir, entry.Name()), entry) {
			matched = append(matched, entry.Name())
		}
	}

	if !reflect.DeepEqual(matched, []string{"PersonTemplate.java"}) {
		t.Errorf("Expected only PersonTemplate.java, got %v", matched)
	}
}

func TestFindJavaFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{
		"com/x/PersonTemplate.java":        "",
		"com/x/internal/Hidden.java":       "",
		"com/x/AddressTemplate.java":       "",
		"com/x/LegacyTemplate.java":        "",
		"target/classes/Compiled.java":     "",
		".idea/Scratch.java":               "",
		"com/y/testdata/FixtureBean.java":  "",
		"com/z/generated/PairEntity.java":  "",
		"com/z/generated/nested/More.java": "",
	})

	fp := NewFileProcessor()
	files, err := fp.FindJavaFiles([]string{tmpDir, tmpDir}, []string{"**/internal/**", "Legacy*.java", "com/z/generated"})
	if err != nil {
		t.Fatalf("FindJavaFiles failed: %v", err)
	}

	expected := []string{"com/x/AddressTemplate.java", "com/x/PersonTemplate.java"}
	if got := relAll(t, tmpDir, files); !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestWalkFilesMissingRoot(t *testing.T) {
	fp := NewFileProcessor()

	if _, err := fp.WalkFiles(filepath.Join(t.TempDir(), "missing"), FileWalkOptions{}); err == nil {
		t.Error("Expected error for missing root")
	}

	files, err := fp.WalkFiles(filepath.Join(t.TempDir(), "missing"), FileWalkOptions{SkipErrors: true})
	if err != nil || len(files) != 0 {
		t.Errorf("Expected no files and no error with SkipErrors, got %v, %v", files, err)
	}
}

func TestValidatePatterns(t *testing.T) {
	if err := ValidatePatterns([]string{"**/*.java", "com/x/*Template.java"}); err != nil {
		t.Errorf("Expected valid patterns, got %v", err)
	}
	if err := ValidatePatterns([]string{"com/[x"}); err == nil {
		t.Error("Expected error for unterminated class")
	}
}

func TestCleanGenerated(t *testing.T) {
	tmpDir := t.TempDir()
	marker := `@Generated("beangen")`
	writeTree(t, tmpDir, map[string]string{
		"com/x/Person.java":      "package com.x;\n\n" + marker + "\npublic class Person {}\n",
		"com/x/HandWritten.java": "package com.x;\n\npublic class HandWritten {}\n",
		"com/y/Pair.java":        marker + "\nclass Pair {}\n",
	})

	fp := NewFileProcessor()
	removed, err := fp.CleanGenerated([]string{tmpDir, filepath.Join(tmpDir, "missing")}, marker)
	if err != nil {
		t.Fatalf("CleanGenerated failed: %v", err)
	}

	expected := []string{"com/x/Person.java", "com/y/Pair.java"}
	if got := relAll(t, tmpDir, removed); !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v removed, got %v", expected, got)
	}

	if _, err := os.Stat(filepath.Join(tmpDir, "com/x/HandWritten.java")); err != nil {
		t.Errorf("Expected hand-written file to survive: %v", err)
	}
}
