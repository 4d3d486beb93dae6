package library

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type call struct {
	op   string
	path string
}

// recordingImporter forwards every call to a channel.
type recordingImporter struct {
	mu      sync.Mutex
	calls   chan call
	failFor map[string]bool
}

func newRecordingImporter() *recordingImporter {
	return &recordingImporter{calls: make(chan call, 64), failFor: map[string]bool{}}
}

func (r *recordingImporter) ImportFile(_ context.Context, path string) error {
	r.calls <- call{op: "import", path: path}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failFor[path] {
		return errors.New("parse failure")
	}
	return nil
}

func (r *recordingImporter) RemoveSource(_ context.Context, path string) error {
	r.calls <- call{op: "remove", path: path}
	return nil
}

func (r *recordingImporter) RemoveSourceDir(_ context.Context, dir string) error {
	r.calls <- call{op: "remove_dir", path: dir}
	return nil
}

// waitFor consumes calls until want arrives.
func (r *recordingImporter) waitFor(t *testing.T, want call) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case got := <-r.calls:
			if got == want {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s %s", want.op, want.path)
		}
	}
}

func quietWatcher(root string, importer Importer) *Watcher {
	w := NewWatcher(root, importer)
	w.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	w.Settle = 20 * time.Millisecond
	return w
}

func TestWatcher_Run(t *testing.T) {
	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	existing := writeFile(t, root, "existing.srt", "x")
	broken := writeFile(t, root, "broken.vtt", "x")

	importer := newRecordingImporter()
	importer.failFor[broken] = true

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := quietWatcher(root, importer)
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Initial scan imports both files; the failing one does not stop the run.
	importer.waitFor(t, call{op: "import", path: existing})

	added := filepath.Join(root, "added.vtt")
	if err := os.WriteFile(added, []byte("WEBVTT\n"), 0644); err != nil {
		t.Fatal(err)
	}
	importer.waitFor(t, call{op: "import", path: added})

	if err := os.Remove(existing); err != nil {
		t.Fatal(err)
	}
	importer.waitFor(t, call{op: "remove", path: existing})

	nested := filepath.Join(root, "season2")
	if err := os.Mkdir(nested, 0755); err != nil {
		t.Fatal(err)
	}
	inner := writeFile(t, nested, "ep1.json", "{}")
	importer.waitFor(t, call{op: "import", path: inner})

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

func TestWatcher_DirectoryMovedOut(t *testing.T) {
	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	outside, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(root, "sub")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	inner := writeFile(t, sub, "a.srt", "x")

	importer := newRecordingImporter()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := quietWatcher(root, importer)
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	importer.waitFor(t, call{op: "import", path: inner})

	if err := os.Rename(sub, filepath.Join(outside, "sub")); err != nil {
		t.Fatal(err)
	}
	importer.waitFor(t, call{op: "remove_dir", path: sub})

	cancel()
	<-done
}

func TestWatcher_DirectoryRenamedInside(t *testing.T) {
	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(root, "season1")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	inner := writeFile(t, sub, "ep1.vtt", "x")

	importer := newRecordingImporter()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := quietWatcher(root, importer)
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	importer.waitFor(t, call{op: "import", path: inner})

	renamed := filepath.Join(root, "season01")
	if err := os.Rename(sub, renamed); err != nil {
		t.Fatal(err)
	}
	// The old entries go and the files come back under the new path.
	importer.waitFor(t, call{op: "remove_dir", path: sub})
	importer.waitFor(t, call{op: "import", path: filepath.Join(renamed, "ep1.vtt")})

	cancel()
	<-done
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	importer := newRecordingImporter()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := quietWatcher(root, importer)
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	writeFile(t, root, "notes.md", "x")
	writeFile(t, root, ".draft.srt", "x")
	marker := writeFile(t, root, "marker.srt", "x")

	// The marker is the first call observed; the ignored files never show up.
	select {
	case got := <-importer.calls:
		if got.path != marker {
			t.Errorf("first call = %+v, want import of %s", got, marker)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for marker import")
	}

	cancel()
	<-done
}

func TestWatcher_RunErrors(t *testing.T) {
	importer := newRecordingImporter()

	missing := quietWatcher(filepath.Join(t.TempDir(), "missing"), importer)
	if err := missing.Run(context.Background()); err == nil {
		t.Error("Run() on missing root expected error")
	}

	file := writeFile(t, t.TempDir(), "plain.srt", "x")
	notDir := quietWatcher(file, importer)
	if err := notDir.Run(context.Background()); err == nil {
		t.Error("Run() on a file root expected error")
	}
}
