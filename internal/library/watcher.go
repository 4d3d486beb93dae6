package library

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultSettle is how long a file must stay quiet after a write before it is
// imported.
const DefaultSettle = 250 * time.Millisecond

// Importer is the catalog side of the watcher. Implementations must be safe
// to call from the watcher goroutine while serving requests.
type Importer interface {
	// ImportFile imports or re-imports the transcript at path.
	ImportFile(ctx context.Context, path string) error
	// RemoveSource drops the transcript imported from path.
	RemoveSource(ctx context.Context, path string) error
	// RemoveSourceDir drops every transcript imported from under dir.
	RemoveSourceDir(ctx context.Context, dir string) error
}

// Watcher imports every transcript under a root directory and follows
// changes to it.
type Watcher struct {
	root     string
	importer Importer
	logger   *slog.Logger

	// Settle delays imports after Create and Write events. Each new event
	// restarts the delay.
	Settle time.Duration
}

// NewWatcher creates a Watcher for root.
func NewWatcher(root string, importer Importer) *Watcher {
	return &Watcher{
		root:     root,
		importer: importer,
		logger:   slog.Default().With("component", "library"),
		Settle:   DefaultSettle,
	}
}

// Run imports the files already under the root, then applies file system
// changes until ctx is cancelled. Per-file failures are logged and skipped.
func (w *Watcher) Run(ctx context.Context) error {
	root, err := filepath.Abs(w.root)
	if err != nil {
		return fmt.Errorf("failed to resolve library root %s: %w", w.root, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("failed to open library root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("library root %s is not a directory", root)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		if err := fw.Close(); err != nil {
			w.logger.Warn("failed to close file watcher", "error", err)
		}
	}()

	// Watch before the initial scan so files written during it are not missed.
	if err := w.watchTree(fw, root); err != nil {
		return err
	}
	w.importTree(ctx, root)

	w.logger.InfoContext(ctx, "library watcher started", "root", root)

	pending := make(map[string]struct{})
	settle := time.NewTimer(w.Settle)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.InfoContext(ctx, "library watcher stopped", "root", root)
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return errors.New("file watcher closed")
			}
			if w.handleEvent(ctx, fw, event, pending) {
				settle.Reset(w.Settle)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return errors.New("file watcher closed")
			}
			w.logger.WarnContext(ctx, "file watcher error", "error", err)

		case <-settle.C:
			for path := range pending {
				delete(pending, path)
				w.importFile(ctx, path)
			}
		}
	}
}

// handleEvent applies one event. It reports whether a path was queued for
// import.
func (w *Watcher) handleEvent(ctx context.Context, fw *fsnotify.Watcher, event fsnotify.Event, pending map[string]struct{}) bool {
	path := event.Name

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if isHidden(info.Name()) {
				return false
			}
			if err := w.watchTree(fw, path); err != nil {
				w.logger.WarnContext(ctx, "failed to watch new directory", "path", path, "error", err)
			}
			// Files may have landed before the watch was added.
			files, err := Scan(ctx, path)
			if err != nil {
				w.logger.WarnContext(ctx, "failed to scan new directory", "path", path, "error", err)
			}
			for _, f := range files {
				pending[f.AbsPath] = struct{}{}
			}
			return len(files) > 0
		}
	}

	if !IsTranscript(path) {
		// A removed or renamed directory gets no per-file events.
		if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
			w.removeDir(ctx, fw, path, pending)
		}
		return false
	}

	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		delete(pending, path)
		if err := w.importer.RemoveSource(ctx, path); err != nil {
			w.logger.WarnContext(ctx, "failed to remove transcript", "path", path, "error", err)
		}
		return false
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		pending[path] = struct{}{}
		return true
	default:
		return false
	}
}

// removeDir forgets everything under dir: queued imports, watches and
// imported transcripts.
func (w *Watcher) removeDir(ctx context.Context, fw *fsnotify.Watcher, dir string, pending map[string]struct{}) {
	prefix := dir + string(filepath.Separator)
	for path := range pending {
		if strings.HasPrefix(path, prefix) {
			delete(pending, path)
		}
	}
	// A directory moved out of the root keeps its watch.
	for _, watched := range fw.WatchList() {
		if watched == dir || strings.HasPrefix(watched, prefix) {
			_ = fw.Remove(watched)
		}
	}
	if err := w.importer.RemoveSourceDir(ctx, dir); err != nil {
		w.logger.WarnContext(ctx, "failed to remove transcripts", "dir", dir, "error", err)
	}
}

// watchTree adds dir and its visible subdirectories to fw.
func (w *Watcher) watchTree(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to access path %s: %w", path, err)
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) importTree(ctx context.Context, root string) {
	files, err := Scan(ctx, root)
	if err != nil {
		w.logger.WarnContext(ctx, "library scan incomplete", "root", root, "error", err)
	}

	imported := 0
	for _, f := range files {
		if ctx.Err() != nil {
			return
		}
		if w.importFile(ctx, f.AbsPath) {
			imported++
		}
	}
	w.logger.InfoContext(ctx, "library scanned", "root", root, "files", len(files), "imported", imported)
}

func (w *Watcher) importFile(ctx context.Context, path string) bool {
	if err := w.importer.ImportFile(ctx, path); err != nil {
		w.logger.WarnContext(ctx, "failed to import transcript", "path", path, "error", err)
		return false
	}
	w.logger.DebugContext(ctx, "transcript file imported", "path", path)
	return true
}
