package input

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kk-code-lab/qpreview/internal/keys"
)

func TestFileWatcherReportsWritesToWatchedFiles(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "a.txt")
	other := filepath.Join(dir, "b.txt")
	for _, p := range []string{watched, other} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}

	log := logrus.New()
	log.SetOutput(io.Discard)
	w := NewFileWatcher([]string{watched}, log)
	ch, err := w.Start()
	if err != nil {
		t.Fatalf("Start returned %v", err)
	}
	defer func() {
		_ = w.Close()
	}()

	if err := os.WriteFile(other, []byte("changed"), 0o644); err != nil {
		t.Fatalf("write other: %v", err)
	}
	if err := os.WriteFile(watched, []byte("changed"), 0o644); err != nil {
		t.Fatalf("write watched: %v", err)
	}

	select {
	case ev := <-ch:
		if ev.Key != keys.KeyFileChanged || ev.Path != filepath.Clean(watched) {
			t.Fatalf("unexpected event %+v", ev)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no change event")
	}
}

func TestFileWatcherCloseEndsStream(t *testing.T) {
	dir := t.TempDir()
	w := NewFileWatcher([]string{filepath.Join(dir, "a.txt")}, nil)
	ch, err := w.Start()
	if err != nil {
		t.Fatalf("Start returned %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close returned %v", err)
	}
	collect(t, ch)
}

func TestFileWatcherMissingDirectoryFails(t *testing.T) {
	w := NewFileWatcher([]string{filepath.Join(t.TempDir(), "missing", "a.txt")}, nil)
	if _, err := w.Start(); err == nil {
		_ = w.Close()
		t.Fatalf("expected error for missing directory")
	}
}

func TestFileWatcherReportsAfterLastWriteOfASave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	w := NewFileWatcher([]string{path}, nil)
	w.debounce = 200 * time.Millisecond
	ch, err := w.Start()
	if err != nil {
		t.Fatalf("Start returned %v", err)
	}
	defer func() {
		_ = w.Close()
	}()

	// Truncate first, then write the final content inside the debounce window.
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	time.Sleep(80 * time.Millisecond)
	if err := os.WriteFile(path, []byte("new content"), 0o644); err != nil {
		t.Fatalf("write final: %v", err)
	}
	lastWrite := time.Now()

	select {
	case ev := <-ch:
		if ev.Path != filepath.Clean(path) {
			t.Fatalf("unexpected event %+v", ev)
		}
		if since := time.Since(lastWrite); since < 100*time.Millisecond {
			t.Fatalf("reload reported %v after the final write, before the save settled", since)
		}
		data, err := os.ReadFile(path)
		if err != nil || string(data) != "new content" {
			t.Fatalf("file at reload time = %q, %v", data, err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no change event after the final write")
	}

	select {
	case ev := <-ch:
		t.Fatalf("expected a single reload for one save, got another %+v", ev)
	case <-time.After(400 * time.Millisecond):
	}
}
