package files

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"

	"github.com/sirupsen/logrus"

	apperr "github.com/kk-code-lab/qpreview/internal/errors"
)

func quietOptions(include ...string) Options {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return Options{Include: include, Logger: l}
}

func touch(t *testing.T, path string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestCollectKeepsArgumentOrder(t *testing.T) {
	dir := t.TempDir()
	b := touch(t, filepath.Join(dir, "b.png"))
	a := touch(t, filepath.Join(dir, "a.png"))

	got, err := Collect([]string{b, a}, quietOptions())
	if err != nil {
		t.Fatalf("Collect returned %v", err)
	}
	if want := []string{b, a}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestCollectExpandsDirectories(t *testing.T) {
	dir := t.TempDir()
	c := touch(t, filepath.Join(dir, "C.jpg"))
	a := touch(t, filepath.Join(dir, "a.png"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "sub", "nested.png"))
	if runtime.GOOS != "windows" {
		touch(t, filepath.Join(dir, ".hidden.png"))
	}

	got, err := Collect([]string{dir}, quietOptions("*.png", "*.jpg"))
	if err != nil {
		t.Fatalf("Collect returned %v", err)
	}
	if want := []string{a, c}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestCollectIncludesHiddenWhenAsked(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("dot-files are not hidden on windows")
	}
	dir := t.TempDir()
	hidden := touch(t, filepath.Join(dir, ".hidden.png"))

	opts := quietOptions()
	opts.Hidden = true
	got, err := Collect([]string{dir}, opts)
	if err != nil {
		t.Fatalf("Collect returned %v", err)
	}
	if want := []string{hidden}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestCollectSkipsMissingPaths(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, filepath.Join(dir, "a.png"))

	got, err := Collect([]string{filepath.Join(dir, "missing.png"), a}, quietOptions())
	if err != nil {
		t.Fatalf("Collect returned %v", err)
	}
	if want := []string{a}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestCollectEmptyIsInvalidArgument(t *testing.T) {
	tests := [][]string{
		nil,
		{""},
		{filepath.Join(t.TempDir(), "missing")},
		{t.TempDir()},
	}
	for _, args := range tests {
		if _, err := Collect(args, quietOptions()); !apperr.Is(err, apperr.ErrInvalidArgument) {
			t.Fatalf("Collect(%v): expected invalid argument, got %v", args, err)
		}
	}
}

func TestCollectRejectsBadPattern(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.png"))
	if _, err := Collect([]string{dir}, quietOptions("[")); !apperr.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument for bad pattern, got %v", err)
	}
}

func TestCollectMakesPathsAbsolute(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.png"))
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd returned %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir returned %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	got, err := Collect([]string{"a.png"}, quietOptions())
	if err != nil {
		t.Fatalf("Collect returned %v", err)
	}
	if len(got) != 1 || !filepath.IsAbs(got[0]) || filepath.Base(got[0]) != "a.png" {
		t.Fatalf("expected one absolute path, got %v", got)
	}
}
