package main

import (
	"errors"
	"io"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/kk-code-lab/qpreview/internal/config"
	apperr "github.com/kk-code-lab/qpreview/internal/errors"
	"github.com/kk-code-lab/qpreview/internal/input"
	"github.com/kk-code-lab/qpreview/internal/keys"
)

type fakeSource struct {
	bound   []keys.Key
	err     error
	ch      chan keys.Event
	started bool
}

func (f *fakeSource) Start() (<-chan keys.Event, error) {
	f.started = true
	if f.err != nil {
		return nil, f.err
	}
	return f.ch, nil
}

func (f *fakeSource) Close() error { return nil }

func stubSources(t *testing.T, available bool, global *fakeSource) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}

	origAvailable, origGlobal, origTerminal := globalAvailable, newGlobalSource, newTerminal
	globalAvailable = available
	newGlobalSource = func(bound []keys.Key) input.Source {
		global.bound = bound
		return global
	}
	newTerminal = func() *input.Terminal { return input.NewTerminal(screen) }
	t.Cleanup(func() {
		globalAvailable, newGlobalSource, newTerminal = origAvailable, origGlobal, origTerminal
	})
	return screen
}

func quietLog() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestOpenSourceAutoFallsBackToTerminal(t *testing.T) {
	global := &fakeSource{err: apperr.New(apperr.SourceFailed, "register", errors.New("no display"))}
	screen := stubSources(t, true, global)

	var prepared *input.Terminal
	src, ch, err := openSource(config.InputAuto, keys.DefaultKeymap(), quietLog(), func(term *input.Terminal) {
		prepared = term
	})
	if err != nil {
		t.Fatalf("openSource returned %v", err)
	}
	defer func() { _ = src.Close() }()

	if !global.started {
		t.Fatalf("expected the global source to be tried first")
	}
	if prepared == nil || src != input.Source(prepared) {
		t.Fatalf("expected the terminal source, got %T", src)
	}

	screen.InjectKey(tcell.KeyRight, 0, tcell.ModNone)
	if ev := <-ch; ev.Key != keys.KeyRight {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestOpenSourceAutoWithoutHookSkipsGlobal(t *testing.T) {
	global := &fakeSource{}
	stubSources(t, false, global)

	src, _, err := openSource(config.InputAuto, keys.DefaultKeymap(), quietLog(), nil)
	if err != nil {
		t.Fatalf("openSource returned %v", err)
	}
	defer func() { _ = src.Close() }()

	if global.started {
		t.Fatalf("global source must not be started when the build has no hook")
	}
	if _, ok := src.(*input.Terminal); !ok {
		t.Fatalf("expected terminal source, got %T", src)
	}
}

func TestOpenSourceGlobalGrabsOnlyNonTypingKeys(t *testing.T) {
	global := &fakeSource{ch: make(chan keys.Event)}
	stubSources(t, true, global)

	src, _, err := openSource(config.InputGlobal, keys.DefaultKeymap(), quietLog(), nil)
	if err != nil {
		t.Fatalf("openSource returned %v", err)
	}
	if src != input.Source(global) {
		t.Fatalf("expected the global source, got %T", src)
	}
	for _, k := range global.bound {
		if k.Typing() {
			t.Fatalf("global source registered typing key %v", k)
		}
	}
	if len(global.bound) != 5 {
		t.Fatalf("expected arrows and Escape, got %v", global.bound)
	}
}

func TestOpenSourceGlobalFailureIsReported(t *testing.T) {
	global := &fakeSource{err: apperr.New(apperr.SourceFailed, "register", errors.New("grabbed"))}
	stubSources(t, true, global)

	_, _, err := openSource(config.InputGlobal, keys.DefaultKeymap(), quietLog(), nil)
	if !errors.Is(err, apperr.ErrSourceFailed) {
		t.Fatalf("expected SourceFailed, got %v", err)
	}
}
