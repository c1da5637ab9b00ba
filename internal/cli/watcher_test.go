package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runResult struct {
	summary Summary
	err     error
}

func TestWatcher_RegeneratesOnChange(t *testing.T) {
	tempDir := t.TempDir()
	src := filepath.Join(tempDir, "src")
	out := filepath.Join(tempDir, "out")
	writeFile(t, filepath.Join(src, "PersonTemplate.java"), personTemplate)

	cfg := testConfig(src, out)
	cfg.Watch.Debounce = 50 * time.Millisecond

	runs := make(chan runResult, 8)
	watcher := NewWatcher(newTestGenerator(&bytes.Buffer{}), nil, func(s Summary, err error) {
		runs <- runResult{s, err}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watcher.Watch(ctx, cfg) }()

	first := waitForRun(t, runs)
	require.NoError(t, first.err)
	assert.Equal(t, 1, first.summary.BeansGenerated)

	// a new package directory is picked up as well
	writeFile(t, filepath.Join(src, "com", "y", "AddressTemplate.java"), "package com.y;\n@Bean class AddressTemplate { String street; }\n")

	var latest runResult
	require.Eventually(t, func() bool {
		select {
		case latest = <-runs:
			return latest.err == nil && latest.summary.BeansGenerated == 2
		default:
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)
	assert.FileExists(t, filepath.Join(out, "com", "y", "Address.java"))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancellation")
	}
}

func TestWatcher_IgnoresOutputDirectory(t *testing.T) {
	tempDir := t.TempDir()
	out := filepath.Join(tempDir, "generated")
	writeFile(t, filepath.Join(tempDir, "PersonTemplate.java"), personTemplate)

	cfg := testConfig(tempDir, out)
	cfg.Watch.Debounce = 20 * time.Millisecond

	runs := make(chan runResult, 8)
	watcher := NewWatcher(newTestGenerator(&bytes.Buffer{}), nil, func(s Summary, err error) {
		runs <- runResult{s, err}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = watcher.Watch(ctx, cfg) }()

	first := waitForRun(t, runs)
	require.NoError(t, first.err)

	// writing the generated file must not trigger another pass
	select {
	case extra := <-runs:
		t.Fatalf("unexpected run: %+v", extra.summary)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_InvalidConfig(t *testing.T) {
	cfg := testConfig(t.TempDir(), "out")
	cfg.Watch.Debounce = 0

	err := NewWatcher(newTestGenerator(&bytes.Buffer{}), nil, nil).Watch(context.Background(), cfg)
	assert.Error(t, err)
}

func waitForRun(t *testing.T, runs <-chan runResult) runResult {
	t.Helper()
	select {
	case r := <-runs:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a generation pass")
		return runResult{}
	}
}
