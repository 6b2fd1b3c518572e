//go:build !windows && !(cgo && darwin) && !(cgo && linux && x11)

package input

import (
	apperr "github.com/kk-code-lab/qpreview/internal/errors"
	"github.com/kk-code-lab/qpreview/internal/keys"
)

// GlobalAvailable reports whether this build can hook keys system-wide.
const GlobalAvailable = false

// Global is unavailable in builds without a hotkey backend. On Linux the X11
// backend is opt-in (-tags x11) because it aborts the process at start-up
// when no display is reachable.
type Global struct{}

func NewGlobal([]keys.Key) *Global {
	return &Global{}
}

func (g *Global) Start() (<-chan keys.Event, error) {
	return nil, apperr.New(apperr.SourceFailed, "global key hook not supported by this build", nil)
}

func (g *Global) Close() error {
	return nil
}
