// Package preview opens files in the platform's quick-preview facility.
package preview

import (
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"

	apperr "github.com/kk-code-lab/qpreview/internal/errors"
)

// Previewer shows one file at a time. Close releases whatever the last Show
// left running.
type Previewer interface {
	Show(path string, fullscreen bool) error
	Close() error
}

// Options selects and configures a previewer.
type Options struct {
	GOOS string
	// Command overrides the platform default, e.g. "feh -Z {file}".
	Command        string
	FullscreenArgs string
	// WindowsMode is "auto", "pipe" or "shell".
	WindowsMode string
	LookPath    func(string) (string, error)
	Getenv      func(string) string
	Logger      logrus.FieldLogger
}

// New returns the previewer for the current platform.
func New(opts Options) Previewer {
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}
	if opts.LookPath == nil {
		opts.LookPath = exec.LookPath
	}
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	return newPreviewer(opts)
}

func newPreviewer(opts Options) Previewer {
	log := opts.Logger
	if custom := firstNonEmpty(opts.Command, opts.Getenv("QPREVIEW_COMMAND")); custom != "" {
		argv := splitCommand(custom)
		if len(argv) > 0 {
			if resolved, ok := resolveExecutable(argv[0], opts.LookPath); ok {
				argv[0] = resolved
			}
			log.WithField("command", argv).Debug("using configured preview command")
			return NewCommandPreviewer(argv, splitCommand(opts.FullscreenArgs), log)
		}
	}

	if strings.EqualFold(opts.GOOS, "windows") {
		return newWindowsPreviewer(opts.WindowsMode, log)
	}

	argv, fullscreenArgs, ok := detectPreviewCommand(opts.GOOS, opts.LookPath)
	if !ok {
		return unavailablePreviewer{goos: opts.GOOS}
	}
	log.WithField("command", argv).Debug("detected preview command")
	return NewCommandPreviewer(argv, fullscreenArgs, log)
}

// detectPreviewCommand finds the native previewer binary. qlmanage has no
// fullscreen switch, so on darwin the flag is accepted and ignored.
func detectPreviewCommand(goos string, lookPath func(string) (string, error)) ([]string, []string, bool) {
	type candidate struct {
		name       string
		args       []string
		fullscreen []string
	}

	var candidates []candidate
	switch strings.ToLower(goos) {
	case "darwin":
		candidates = []candidate{
			{name: "qlmanage", args: []string{"-p", filePlaceholder}},
			{name: "open", args: []string{"-a", "Preview", filePlaceholder}},
		}
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		candidates = []candidate{
			{name: "sushi", args: []string{filePlaceholder}, fullscreen: []string{"-f"}},
			{name: "xdg-open", args: []string{filePlaceholder}},
		}
	default:
		return nil, nil, false
	}

	for _, c := range candidates {
		if path, err := lookPath(c.name); err == nil && path != "" {
			return append([]string{path}, c.args...), c.fullscreen, true
		}
	}
	return nil, nil, false
}

type unavailablePreviewer struct {
	goos string
}

func (u unavailablePreviewer) Show(string, bool) error {
	return apperr.New(apperr.PreviewUnavailable, "no preview facility found on "+u.goos, nil)
}

func (unavailablePreviewer) Close() error {
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func resolveExecutable(cmd string, lookPath func(string) (string, error)) (string, bool) {
	if cmd == "" {
		return "", false
	}
	path, err := lookPath(homeRelative(cmd))
	if err != nil {
		return "", false
	}
	return path, true
}
