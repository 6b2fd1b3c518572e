// Package session tracks which of the requested files is being previewed.
package session

import (
	apperr "github.com/kk-code-lab/qpreview/internal/errors"
)

// Session holds the ordered file list, the current position and the
// session-wide fullscreen flag. The list never changes after New.
type Session struct {
	files      []string
	index      int
	fullscreen bool
}

// New creates a session positioned on the first file.
func New(files []string, fullscreen bool) (*Session, error) {
	if len(files) == 0 {
		return nil, apperr.New(apperr.InvalidArgument, "no files to preview", nil)
	}
	owned := make([]string, len(files))
	copy(owned, files)
	return &Session{files: owned, fullscreen: fullscreen}, nil
}

// Current returns the path at the current position.
func (s *Session) Current() string {
	return s.files[s.index]
}

// Index returns the current position.
func (s *Session) Index() int {
	return s.index
}

// Len returns the number of files in the session.
func (s *Session) Len() int {
	return len(s.files)
}

// Fullscreen reports the session-wide fullscreen flag.
func (s *Session) Fullscreen() bool {
	return s.fullscreen
}

// Advance moves to the next file, wrapping to the first.
func (s *Session) Advance() {
	s.index = (s.index + 1) % len(s.files)
}

// Retreat moves to the previous file, wrapping to the last.
func (s *Session) Retreat() {
	s.index = (s.index - 1 + len(s.files)) % len(s.files)
}
