package preview

import (
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"sync"

	"github.com/sirupsen/logrus"

	apperr "github.com/kk-code-lab/qpreview/internal/errors"
)

var commandBuilder = exec.Command

// CommandPreviewer shows a file by spawning an external viewer process.
// Only one spawned viewer is alive at a time: showing a new file stops the
// previous process first.
type CommandPreviewer struct {
	argv           commandTemplate
	fullscreenArgs []string
	log            logrus.FieldLogger

	mu      sync.Mutex
	current *exec.Cmd
	done    chan struct{}
}

// NewCommandPreviewer builds a previewer from argv. A "{file}" element is
// replaced by the path; without one the path is appended. fullscreenArgs are
// appended when fullscreen is requested.
func NewCommandPreviewer(argv, fullscreenArgs []string, log logrus.FieldLogger) *CommandPreviewer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CommandPreviewer{
		argv:           append(commandTemplate(nil), argv...),
		fullscreenArgs: append([]string(nil), fullscreenArgs...),
		log:            log,
	}
}

// Args returns the full command line used to show path.
func (p *CommandPreviewer) Args(path string, fullscreen bool) []string {
	args := p.argv.render(path)
	if fullscreen {
		args = append(args, p.fullscreenArgs...)
	}
	return args
}

// Show stops the previous viewer and starts a new one for path. It does not
// wait for the viewer to exit.
func (p *CommandPreviewer) Show(path string, fullscreen bool) error {
	if len(p.argv) == 0 {
		return apperr.New(apperr.PreviewUnavailable, "no preview command configured", nil)
	}

	args := p.Args(path, fullscreen)

	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()

	cmd := commandBuilder(args[0], args[1:]...)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return apperr.New(apperr.PreviewUnavailable, "start "+args[0], err)
		}
		return apperr.WithPath(apperr.PreviewFailed, "start "+args[0]+" for", path, err)
	}
	p.log.WithFields(logrus.Fields{"cmd": args[0], "pid": cmd.Process.Pid, "path": path}).Debug("preview started")

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := cmd.Wait(); err != nil {
			p.log.WithError(err).WithField("path", path).Debug("preview process exited")
		}
	}()
	p.current = cmd
	p.done = done
	return nil
}

// Close stops the last spawned viewer.
func (p *CommandPreviewer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	return nil
}

func (p *CommandPreviewer) stopLocked() {
	if p.current == nil {
		return
	}
	select {
	case <-p.done:
	default:
		if err := p.current.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			p.log.WithError(err).Debug("could not stop previous preview")
		}
		<-p.done
	}
	p.current = nil
	p.done = nil
}
