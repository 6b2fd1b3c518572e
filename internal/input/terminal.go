package input

import (
	"sync"
	"unicode"

	"github.com/gdamore/tcell/v2"

	apperr "github.com/kk-code-lab/qpreview/internal/errors"
	"github.com/kk-code-lab/qpreview/internal/keys"
)

// Terminal reads keys from the controlling terminal through tcell. It only
// sees keys while the terminal has focus, but works without a system hook.
type Terminal struct {
	screen   tcell.Screen
	onResize func()

	out  chan keys.Event
	stop chan struct{}
	once sync.Once
}

// NewTerminal wraps screen; a nil screen is created and initialised on Start.
func NewTerminal(screen tcell.Screen) *Terminal {
	return &Terminal{
		screen: screen,
		out:    make(chan keys.Event),
		stop:   make(chan struct{}),
	}
}

// Screen returns the screen events are read from, nil before Start.
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

// OnResize registers a callback run from the reader goroutine on resize.
func (t *Terminal) OnResize(fn func()) {
	t.onResize = fn
}

// Open creates and initialises the terminal screen if none was given. Start
// calls it implicitly.
func (t *Terminal) Open() error {
	if t.screen != nil {
		return nil
	}
	// Drop keys typed before the screen took over the console.
	_ = flushConsoleInput()
	screen, err := tcell.NewScreen()
	if err != nil {
		return apperr.New(apperr.SourceFailed, "open terminal", err)
	}
	if err := screen.Init(); err != nil {
		return apperr.New(apperr.SourceFailed, "init terminal", err)
	}
	t.screen = screen
	return nil
}

func (t *Terminal) Start() (<-chan keys.Event, error) {
	if err := t.Open(); err != nil {
		return nil, err
	}
	go t.read()
	return t.out, nil
}

func (t *Terminal) read() {
	defer close(t.out)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC {
				return
			}
			select {
			case t.out <- keys.Event{Key: translateKey(ev), Kind: keys.Press}:
			case <-t.stop:
				return
			}
		case *tcell.EventResize:
			t.screen.Sync()
			if t.onResize != nil {
				t.onResize()
			}
		}
	}
}

// Close restores the terminal; the event channel closes once the reader
// notices.
func (t *Terminal) Close() error {
	t.once.Do(func() {
		close(t.stop)
		if t.screen != nil {
			t.screen.Fini()
		}
	})
	return nil
}

func translateKey(ev *tcell.EventKey) keys.Key {
	switch ev.Key() {
	case tcell.KeyRight:
		return keys.KeyRight
	case tcell.KeyLeft:
		return keys.KeyLeft
	case tcell.KeyUp:
		return keys.KeyUp
	case tcell.KeyDown:
		return keys.KeyDown
	case tcell.KeyEscape:
		return keys.KeyEscape
	case tcell.KeyEnter:
		return keys.KeyEnter
	case tcell.KeyRune:
		switch unicode.ToLower(ev.Rune()) {
		case ' ':
			return keys.KeySpace
		case 'q':
			return keys.KeyQ
		case 'r':
			return keys.KeyR
		case 'j':
			return keys.KeyJ
		case 'k':
			return keys.KeyK
		case 'n':
			return keys.KeyN
		case 'p':
			return keys.KeyP
		}
	}
	return keys.KeyUnknown
}
