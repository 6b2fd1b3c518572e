//go:build windows || (cgo && darwin) || (cgo && linux && x11)

package input

import (
	"sync"

	"golang.design/x/hotkey"

	apperr "github.com/kk-code-lab/qpreview/internal/errors"
	"github.com/kk-code-lab/qpreview/internal/keys"
)

var hotkeyCodes = map[keys.Key]hotkey.Key{
	keys.KeyRight:  hotkey.KeyRight,
	keys.KeyLeft:   hotkey.KeyLeft,
	keys.KeyUp:     hotkey.KeyUp,
	keys.KeyDown:   hotkey.KeyDown,
	keys.KeyEscape: hotkey.KeyEscape,
	keys.KeyEnter:  hotkey.KeyReturn,
	keys.KeySpace:  hotkey.KeySpace,
	keys.KeyQ:      hotkey.KeyQ,
	keys.KeyR:      hotkey.KeyR,
	keys.KeyJ:      hotkey.KeyJ,
	keys.KeyK:      hotkey.KeyK,
	keys.KeyN:      hotkey.KeyN,
	keys.KeyP:      hotkey.KeyP,
}

// GlobalAvailable reports whether this build can hook keys system-wide.
const GlobalAvailable = true

// Global registers each bound key as a system-wide hotkey, so presses are
// seen while the preview window has focus.
type Global struct {
	keys []keys.Key

	mu      sync.Mutex
	hotkeys []*hotkey.Hotkey
	out     chan keys.Event
	stop    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// NewGlobal creates a global source for the given keys.
func NewGlobal(bound []keys.Key) *Global {
	return &Global{
		keys: append([]keys.Key(nil), bound...),
		out:  make(chan keys.Event),
		stop: make(chan struct{}),
	}
}

func (g *Global) Start() (<-chan keys.Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, k := range g.keys {
		code, ok := hotkeyCodes[k]
		if !ok {
			continue
		}
		hk := hotkey.New(nil, code)
		if err := hk.Register(); err != nil {
			g.unregisterLocked()
			return nil, apperr.New(apperr.SourceFailed, "register global key "+k.String(), err)
		}
		g.hotkeys = append(g.hotkeys, hk)
		g.wg.Add(1)
		go g.forward(k, hk)
	}
	if len(g.hotkeys) == 0 {
		return nil, apperr.New(apperr.SourceFailed, "no global keys to register", nil)
	}

	go func() {
		g.wg.Wait()
		close(g.out)
	}()
	return g.out, nil
}

// forward drains both directions of one hotkey; the hotkey backend blocks
// until its channels are read.
func (g *Global) forward(k keys.Key, hk *hotkey.Hotkey) {
	defer g.wg.Done()
	down := hk.Keydown()
	up := hk.Keyup()
	for {
		var ev keys.Event
		select {
		case <-g.stop:
			return
		case _, ok := <-down:
			if !ok {
				return
			}
			ev = keys.Pressed(k)
		case _, ok := <-up:
			if !ok {
				return
			}
			ev = keys.Event{Key: k, Kind: keys.Release}
		}
		select {
		case g.out <- ev:
		case <-g.stop:
			return
		}
	}
}

func (g *Global) Close() error {
	g.once.Do(func() {
		close(g.stop)
		g.mu.Lock()
		g.unregisterLocked()
		g.mu.Unlock()
	})
	return nil
}

func (g *Global) unregisterLocked() {
	for _, hk := range g.hotkeys {
		_ = hk.Unregister()
	}
	g.hotkeys = nil
}
