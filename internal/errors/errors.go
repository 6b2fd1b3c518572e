// Package errors defines the error taxonomy shared by the session, the
// previewers and the navigation loop.
package errors

import (
	"errors"
	"fmt"
)

var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

// Kind classifies an Error.
type Kind int

const (
	Unknown Kind = iota
	// InvalidArgument is a startup problem with the file list or flags.
	InvalidArgument
	// PreviewFailed is a single show call that failed; the run continues.
	PreviewFailed
	// PreviewUnavailable means the preview mechanism cannot work for the rest of the run.
	PreviewUnavailable
	// SourceFailed is a key source that could not start or broke mid-run.
	SourceFailed
	// InvalidConfig is a malformed configuration file or value.
	InvalidConfig
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid argument"
	case PreviewFailed:
		return "preview failed"
	case PreviewUnavailable:
		return "preview unavailable"
	case SourceFailed:
		return "key source failed"
	case InvalidConfig:
		return "invalid config"
	default:
		return "unknown error"
	}
}

// Sentinels usable with errors.Is; they match any *Error of the same kind.
var (
	ErrInvalidArgument    = &Error{Kind: InvalidArgument}
	ErrPreviewFailed      = &Error{Kind: PreviewFailed}
	ErrPreviewUnavailable = &Error{Kind: PreviewUnavailable}
	ErrSourceFailed       = &Error{Kind: SourceFailed}
	ErrInvalidConfig      = &Error{Kind: InvalidConfig}
)

// Error is the application error type.
type Error struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

// New creates an Error of the given kind.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// WithPath creates an Error tied to a file path.
func WithPath(kind Kind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

func (e *Error) Error() string {
	msg := e.Op
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s %s", msg, e.Path)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches sentinels by kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.Path == "" && t.Err == nil && t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// IsFatal reports whether a previewer error ends the run.
func IsFatal(err error) bool {
	return KindOf(err) == PreviewUnavailable
}
