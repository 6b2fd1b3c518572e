// Package logging configures the process logger.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Options selects the log destination and verbosity.
type Options struct {
	Level string
	// File, when set, receives the log instead of Stderr.
	File   string
	Stderr io.Writer
}

// DefaultFile returns <UserCacheDir>/qpreview/qpreview.log.
func DefaultFile() string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	return filepath.Join(cacheDir, "qpreview", "qpreview.log")
}

// New builds a logger. The returned closer releases the log file, if any.
// An unusable log file falls back to Stderr with a warning.
func New(opts Options) (*logrus.Logger, io.Closer) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	log.SetOutput(stderr)

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
		if opts.Level != "" {
			log.WithField("level", opts.Level).Warn("unknown log level, using info")
		}
	}
	log.SetLevel(level)

	if opts.File == "" {
		return log, nopCloser{}
	}
	return log, Redirect(log, opts.File)
}

// Redirect sends log output to path from now on. On failure the output is
// left unchanged and a warning is logged there.
func Redirect(log *logrus.Logger, path string) io.Closer {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		log.WithError(err).Warn("cannot create log directory")
		return nopCloser{}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		log.WithError(err).Warn("cannot open log file")
		return nopCloser{}
	}
	log.SetOutput(f)
	return f
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
