package cli

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/toyz/beangen/internal/errors"
	"github.com/toyz/beangen/internal/utils"
)

// RunFunc receives the outcome of every generation pass in watch mode
type RunFunc func(Summary, error)

// Watcher re-runs the generator when Java sources change
type Watcher struct {
	generator   *Generator
	diagnostics *utils.DiagnosticSystem
	onRun       RunFunc
}

// NewWatcher creates a watcher driving gen; onRun may be nil
func NewWatcher(gen *Generator, diagnostics *utils.DiagnosticSystem, onRun RunFunc) *Watcher {
	if diagnostics == nil {
		diagnostics = utils.NewQuietDiagnostics()
	}
	if onRun == nil {
		onRun = func(Summary, error) {}
	}
	return &Watcher{generator: gen, diagnostics: diagnostics, onRun: onRun}
}

// Watch runs the generator once, then again after every burst of .java changes
// settles for config.Watch.Debounce. It returns when ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context, config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}

	roots, err := w.generator.scanner.ResolveRoots(config.SourceDirs)
	if err != nil {
		return err
	}
	skipped, err := w.generator.scanner.ResolveRoots([]string{config.OutputDir})
	if err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.FileSystemErrorCode, "failed to create file watcher", err)
	}
	defer fsw.Close()

	for _, root := range roots {
		if err := w.addTree(fsw, root, skipped); err != nil {
			return err
		}
	}

	w.onRun(w.generator.Run(ctx, config))
	w.diagnostics.Info("Watching %d source root(s) for changes", len(roots))

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(fsw, event, skipped) {
				continue
			}
			w.diagnostics.Verbose("Change detected: %s", event.Name)
			w.generator.Invalidate(event.Name)

			if timer == nil {
				timer = time.NewTimer(config.Watch.Debounce)
			} else {
				timer.Reset(config.Watch.Debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.onRun(w.generator.Run(ctx, config))

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.diagnostics.Warn("Watcher error: %v", err)
		}
	}
}

// relevant reports whether event should trigger a run. New directories are
// added to the watch list as a side effect.
func (w *Watcher) relevant(fsw *fsnotify.Watcher, event fsnotify.Event, skipped []string) bool {
	if underAny(event.Name, skipped) {
		return false
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(fsw, event.Name, skipped); err != nil {
				w.diagnostics.Warn("%v", err)
			}
			return true
		}
	}

	if !strings.HasSuffix(event.Name, ".java") {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)
}

// addTree watches root and every directory below it that the default directory filter keeps
func (w *Watcher) addTree(fsw *fsnotify.Watcher, root string, skipped []string) error {
	filter := utils.DefaultDirectoryFilter()

	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return errors.WrapFileSystemError("watch", path, err)
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && (!filter(path, entry) || underAny(path, skipped)) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			return errors.WrapFileSystemError("watch", path, err)
		}
		return nil
	})
}
