package main

import (
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/kk-code-lab/qpreview/internal/config"
	"github.com/kk-code-lab/qpreview/internal/files"
	"github.com/kk-code-lab/qpreview/internal/input"
	"github.com/kk-code-lab/qpreview/internal/keys"
	"github.com/kk-code-lab/qpreview/internal/logging"
	"github.com/kk-code-lab/qpreview/internal/nav"
	"github.com/kk-code-lab/qpreview/internal/preview"
	"github.com/kk-code-lab/qpreview/internal/session"
	"github.com/kk-code-lab/qpreview/internal/ui/status"
)

// runPreview wires the session, previewer and key sources together and
// blocks until the navigation loop ends.
func runPreview(cfg *config.Config, args []string, stderr io.Writer) error {
	log, logCloser := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		File:   cfg.LogFile,
		Stderr: stderr,
	})
	defer func() { _ = logCloser.Close() }()

	paths, err := files.Collect(args, files.Options{
		Include: cfg.Include,
		Hidden:  cfg.Hidden,
		Logger:  log,
	})
	if err != nil {
		return err
	}
	s, err := session.New(paths, cfg.Fullscreen)
	if err != nil {
		return err
	}
	km, err := cfg.Keymap()
	if err != nil {
		return err
	}

	var loopOpts []nav.Option
	src, primary, err := openSource(cfg.Input, km, log, func(term *input.Terminal) {
		// The terminal now belongs to tcell; keep the log off it.
		if cfg.LogFile == "" {
			logCloser = logging.Redirect(log, logging.DefaultFile())
		}
		line := status.New(term.Screen())
		hint := keyHint(km)
		line.Update(status.View{Total: s.Len(), Path: s.Current(), Fullscreen: s.Fullscreen(), Hint: hint})
		term.OnResize(line.Redraw)
		loopOpts = append(loopOpts, nav.WithShowHook(func(ev nav.ShowEvent) {
			line.Update(status.View{
				Index:      ev.Index,
				Total:      ev.Total,
				Path:       ev.Path,
				Fullscreen: s.Fullscreen(),
				Err:        ev.Err,
				Hint:       hint,
			})
		}))
	})
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	var extra []<-chan keys.Event
	if cfg.Watch {
		watcher := input.NewFileWatcher(paths, log)
		if ch, err := watcher.Start(); err != nil {
			log.WithError(err).Warn("file watching disabled")
		} else {
			defer func() { _ = watcher.Close() }()
			extra = append(extra, ch)
		}
	}

	pv := preview.New(preview.Options{
		Command:        cfg.Previewer.Command,
		FullscreenArgs: cfg.Previewer.FullscreenArgs,
		WindowsMode:    cfg.Previewer.WindowsMode,
		Logger:         log,
	})
	defer func() { _ = pv.Close() }()

	stopSignals := closeOnSignal(src, log)
	defer stopSignals()

	log.WithFields(logrus.Fields{
		"files":      s.Len(),
		"fullscreen": s.Fullscreen(),
		"input":      cfg.Input,
		"watch":      cfg.Watch,
	}).Info("session started")

	loopOpts = append(loopOpts, nav.WithKeymap(km), nav.WithLogger(log))
	consumerDone := make(chan struct{})
	defer close(consumerDone)
	res := nav.New(pv, loopOpts...).Run(s, input.Merge(consumerDone, primary, extra...))

	log.WithFields(logrus.Fields{
		"reason":   res.Reason,
		"shows":    res.Shows,
		"failures": res.Failures,
	}).Info("session ended")

	if res.Reason == nav.FatalPreviewError {
		return res.Err
	}
	return nil
}

// Key source constructors, replaced in tests.
var (
	globalAvailable = input.GlobalAvailable
	newGlobalSource = func(bound []keys.Key) input.Source { return input.NewGlobal(bound) }
	newTerminal     = func() *input.Terminal { return input.NewTerminal(nil) }
)

// openSource starts the primary key source. In auto mode a global hook is
// preferred and the terminal is the fallback. onTerminal runs after the
// terminal screen is initialised and before it starts delivering keys.
func openSource(mode string, km *keys.Keymap, log logrus.FieldLogger, onTerminal func(*input.Terminal)) (input.Source, <-chan keys.Event, error) {
	if mode == config.InputGlobal || (mode == config.InputAuto && globalAvailable) {
		g := newGlobalSource(km.GlobalKeys())
		ch, err := g.Start()
		if err == nil {
			return g, ch, nil
		}
		if mode == config.InputGlobal {
			return nil, nil, err
		}
		log.WithError(err).Info("global keys unavailable, reading keys from the terminal")
	}

	term := newTerminal()
	if err := term.Open(); err != nil {
		return nil, nil, err
	}
	if onTerminal != nil {
		onTerminal(term)
	}
	ch, err := term.Start()
	if err != nil {
		_ = term.Close()
		return nil, nil, err
	}
	return term, ch, nil
}

// closeOnSignal closes src on SIGINT or SIGTERM, which ends its event stream
// and lets the loop finish normally. The returned func stops listening.
func closeOnSignal(src input.Source, log logrus.FieldLogger) func() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, quitSignals()...)
	done := make(chan struct{})
	go func() {
		select {
		case sig := <-sigCh:
			log.WithField("signal", sig).Info("stopping")
			_ = src.Close()
		case <-done:
		}
	}()
	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}

// keyHint renders the bindings for the status screen, e.g.
// "Right/Down next  Left/Up prev  Escape/Q quit".
func keyHint(km *keys.Keymap) string {
	var parts []string
	for _, cmd := range []keys.Command{keys.CmdNext, keys.CmdPrev, keys.CmdReload, keys.CmdQuit} {
		bound := km.KeysFor(cmd)
		if len(bound) == 0 {
			continue
		}
		names := make([]string, len(bound))
		for i, k := range bound {
			names[i] = k.String()
		}
		parts = append(parts, strings.Join(names, "/")+" "+cmd.String())
	}
	return strings.Join(parts, "  ")
}
