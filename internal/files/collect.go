// Package files turns command-line arguments into the ordered file list of a
// preview session.
package files

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/sirupsen/logrus"

	apperr "github.com/kk-code-lab/qpreview/internal/errors"
)

// Options controls directory expansion.
type Options struct {
	// Include holds glob patterns matched against base names of files found
	// inside directory arguments. Explicit file arguments are never filtered.
	Include []string
	// Hidden includes hidden entries when expanding directories.
	Hidden bool
	Logger logrus.FieldLogger
}

// Collect resolves args to absolute file paths in argument order. Directory
// arguments expand to their regular files sorted by name. Missing paths are
// skipped with a warning. An empty result is an InvalidArgument error.
func Collect(args []string, opts Options) ([]string, error) {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	matchers, err := compilePatterns(opts.Include)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, arg := range args {
		if strings.TrimSpace(arg) == "" {
			continue
		}
		abs, err := filepath.Abs(arg)
		if err != nil {
			log.WithError(err).WithField("path", arg).Warn("skipping path")
			continue
		}
		info, err := os.Stat(abs)
		if err != nil {
			log.WithError(err).WithField("path", arg).Warn("skipping path")
			continue
		}
		if !info.IsDir() {
			out = append(out, abs)
			continue
		}
		expanded, err := expandDir(abs, matchers, opts.Hidden)
		if err != nil {
			log.WithError(err).WithField("path", arg).Warn("skipping directory")
			continue
		}
		if len(expanded) == 0 {
			log.WithField("path", arg).Warn("directory has no matching files")
		}
		out = append(out, expanded...)
	}

	if len(out) == 0 {
		return nil, apperr.New(apperr.InvalidArgument, "no files to preview", nil)
	}
	return out, nil
}

func compilePatterns(patterns []string) ([]glob.Glob, error) {
	var out []glob.Glob
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		g, err := glob.Compile(p)
		if err != nil {
			return nil, apperr.New(apperr.InvalidArgument, "include pattern "+p, err)
		}
		out = append(out, g)
	}
	return out, nil
}

func expandDir(dir string, matchers []glob.Glob, hidden bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		full := filepath.Join(dir, e.Name())
		if !hidden && IsHidden(full, e.Name()) {
			continue
		}
		info, err := os.Stat(full)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if !matchesAny(matchers, e.Name()) {
			continue
		}
		out = append(out, full)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(filepath.Base(out[i])) < strings.ToLower(filepath.Base(out[j]))
	})
	return out, nil
}

func matchesAny(matchers []glob.Glob, name string) bool {
	if len(matchers) == 0 {
		return true
	}
	lower := strings.ToLower(name)
	for _, m := range matchers {
		if m.Match(name) || m.Match(lower) {
			return true
		}
	}
	return false
}
