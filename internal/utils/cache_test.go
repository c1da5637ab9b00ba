package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestCache_BasicOperations(t *testing.T) {
	cache := NewCache[string, int]()

	cache.Set("key1", 42)
	value, exists := cache.Get("key1")
	if !exists {
		t.Error("expected key1 to exist")
	}
	if value != 42 {
		t.Errorf("expected value 42, got %d", value)
	}

	_, exists = cache.Get("nonexistent")
	if exists {
		t.Error("expected nonexistent key to not exist")
	}

	cache.Delete("key1")
	if _, exists = cache.Get("key1"); exists {
		t.Error("expected key1 to be deleted")
	}
}

func TestCache_Stats(t *testing.T) {
	cache := NewCache[string, string]()

	cache.Set("a", "1")
	cache.Set("b", "2")
	cache.Get("a")
	cache.Get("missing")

	stats := cache.GetStats()
	if stats.Size != 2 || stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestCache_FileValidation(t *testing.T) {
	cache := NewCache[string, string]()

	tmpFile := filepath.Join(t.TempDir(), "Person.java")
	content := "class PersonTemplate {}"
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}

	if err := cache.SetWithFileInfo(tmpFile, content, tmpFile); err != nil {
		t.Fatalf("failed to set cache with file info: %v", err)
	}

	value, exists := cache.GetWithFileValidation(tmpFile, tmpFile)
	if !exists {
		t.Error("expected cached value to exist")
	}
	if value != content {
		t.Errorf("expected content %q, got %q", content, value)
	}

	// a size change is enough to invalidate even when the mtime resolution is coarse
	if err := os.WriteFile(tmpFile, []byte(content+"\n// changed"), 0644); err != nil {
		t.Fatalf("failed to modify temp file: %v", err)
	}

	if _, exists = cache.GetWithFileValidation(tmpFile, tmpFile); exists {
		t.Error("expected cached value to be invalidated after file change")
	}
	if cache.Size() != 0 {
		t.Errorf("expected cache to be empty after invalidation, got size %d", cache.Size())
	}
}

func TestCache_FileValidationNonExistentFile(t *testing.T) {
	cache := NewCache[string, string]()

	if _, exists := cache.GetWithFileValidation("test", "/nonexistent/file.java"); exists {
		t.Error("expected false for non-existent file")
	}
	if err := cache.SetWithFileInfo("test", "content", "/nonexistent/file.java"); err == nil {
		t.Error("expected error for non-existent file")
	}
}

func TestCache_GetOrLoad(t *testing.T) {
	cache := NewCache[string, int]()
	tmpFile := filepath.Join(t.TempDir(), "A.java")
	if err := os.WriteFile(tmpFile, []byte("class A {}"), 0644); err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}

	loads := 0
	load := func() (int, error) {
		loads++
		return loads, nil
	}

	first, err := cache.GetOrLoad(tmpFile, tmpFile, load)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := cache.GetOrLoad(tmpFile, tmpFile, load)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != 1 || second != 1 || loads != 1 {
		t.Errorf("expected a single load, got first=%d second=%d loads=%d", first, second, loads)
	}

	stats := cache.GetStats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("expected 1 hit and 1 miss, got %+v", stats)
	}
}

func TestCache_GetOrLoadError(t *testing.T) {
	cache := NewCache[string, int]()
	tmpFile := filepath.Join(t.TempDir(), "B.java")
	if err := os.WriteFile(tmpFile, []byte("class B {"), 0644); err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}

	boom := errors.New("boom")
	_, err := cache.GetOrLoad(tmpFile, tmpFile, func() (int, error) { return 0, boom })
	if !errors.Is(err, boom) {
		t.Errorf("expected load error, got %v", err)
	}
	if cache.Size() != 0 {
		t.Errorf("failed loads must not be cached, size %d", cache.Size())
	}
}

func TestCache_ConcurrentAccess(t *testing.T) {
	cache := NewCache[string, int]()

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(2)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				cache.Set(fmt.Sprintf("key%d_%d", id, j), id*100+j)
			}
		}(i)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				cache.Get(fmt.Sprintf("key%d_%d", id, j))
			}
		}(i)
	}
	wg.Wait()

	if cache.Size() != 500 {
		t.Errorf("expected 500 items in cache, got %d", cache.Size())
	}
}
