// Package nav drives a preview session from a stream of key events.
package nav

import (
	"github.com/sirupsen/logrus"

	apperr "github.com/kk-code-lab/qpreview/internal/errors"
	"github.com/kk-code-lab/qpreview/internal/keys"
	"github.com/kk-code-lab/qpreview/internal/session"
)

// Previewer opens one file in a preview facility.
type Previewer interface {
	Show(path string, fullscreen bool) error
}

// PreviewerFunc adapts a function to Previewer.
type PreviewerFunc func(path string, fullscreen bool) error

func (f PreviewerFunc) Show(path string, fullscreen bool) error {
	return f(path, fullscreen)
}

// Reason says why Run returned.
type Reason int

const (
	UserQuit Reason = iota + 1
	SourceClosed
	FatalPreviewError
)

func (r Reason) String() string {
	switch r {
	case UserQuit:
		return "user quit"
	case SourceClosed:
		return "source closed"
	case FatalPreviewError:
		return "fatal preview error"
	default:
		return "unknown"
	}
}

// Result describes a finished run.
type Result struct {
	Reason Reason
	// Err is set when Reason is FatalPreviewError.
	Err      error
	Shows    int
	Failures int
}

// ShowEvent is passed to the show hook after every show attempt.
type ShowEvent struct {
	Index int
	Total int
	Path  string
	Err   error
}

// Loop consumes key events and re-renders the session through a Previewer.
type Loop struct {
	previewer Previewer
	keymap    *keys.Keymap
	log       logrus.FieldLogger
	onError   func(error)
	onShow    func(ShowEvent)
}

// Option configures a Loop.
type Option func(*Loop)

// WithKeymap replaces the default key bindings.
func WithKeymap(km *keys.Keymap) Option {
	return func(l *Loop) {
		if km != nil {
			l.keymap = km
		}
	}
}

// WithLogger sets the logger used for reporting.
func WithLogger(log logrus.FieldLogger) Option {
	return func(l *Loop) {
		if log != nil {
			l.log = log
		}
	}
}

// WithErrorHandler receives every failed show, fatal or not.
func WithErrorHandler(fn func(error)) Option {
	return func(l *Loop) {
		l.onError = fn
	}
}

// WithShowHook is called after every show attempt.
func WithShowHook(fn func(ShowEvent)) Option {
	return func(l *Loop) {
		l.onShow = fn
	}
}

// New creates a loop around previewer.
func New(previewer Previewer, opts ...Option) *Loop {
	l := &Loop{
		previewer: previewer,
		keymap:    keys.DefaultKeymap(),
		log:       logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.onError == nil {
		l.onError = func(err error) {
			l.log.WithError(err).Warn("preview failed")
		}
	}
	return l
}

// Run shows the current file, then handles events in arrival order until a
// quit key, the end of the stream, or a fatal previewer error.
func (l *Loop) Run(s *session.Session, events <-chan keys.Event) Result {
	var res Result

	if err := l.show(s, &res); apperr.IsFatal(err) {
		res.Reason = FatalPreviewError
		res.Err = err
		return res
	}

	for ev := range events {
		cmd := l.keymap.Lookup(ev)
		switch cmd {
		case keys.CmdNext:
			s.Advance()
		case keys.CmdPrev:
			s.Retreat()
		case keys.CmdReload:
			if ev.Path != "" && ev.Path != s.Current() {
				continue
			}
		case keys.CmdQuit:
			l.log.WithField("key", ev.Key).Debug("quit requested")
			res.Reason = UserQuit
			return res
		default:
			continue
		}

		l.log.WithFields(logrus.Fields{"key": ev.Key, "command": cmd, "index": s.Index()}).Debug("navigate")
		if err := l.show(s, &res); apperr.IsFatal(err) {
			res.Reason = FatalPreviewError
			res.Err = err
			return res
		}
	}

	res.Reason = SourceClosed
	return res
}

func (l *Loop) show(s *session.Session, res *Result) error {
	path := s.Current()
	res.Shows++
	err := l.previewer.Show(path, s.Fullscreen())
	if err != nil {
		res.Failures++
		if apperr.KindOf(err) == apperr.Unknown {
			err = apperr.WithPath(apperr.PreviewFailed, "show", path, err)
		}
		l.onError(err)
	}
	if l.onShow != nil {
		l.onShow(ShowEvent{Index: s.Index(), Total: s.Len(), Path: path, Err: err})
	}
	return err
}
