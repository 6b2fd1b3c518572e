package input

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	apperr "github.com/kk-code-lab/qpreview/internal/errors"
	"github.com/kk-code-lab/qpreview/internal/keys"
)

const defaultDebounce = 250 * time.Millisecond

// FileWatcher emits a KeyFileChanged event when one of the session's files
// is written or replaced. Parent directories are watched rather than the
// files, because editors commonly save by renaming a new file into place.
type FileWatcher struct {
	files    map[string]struct{}
	dirs     []string
	debounce time.Duration
	log      logrus.FieldLogger

	fsWatcher *fsnotify.Watcher
	out       chan keys.Event
	stop      chan struct{}
	once      sync.Once
}

// NewFileWatcher watches the given absolute paths.
func NewFileWatcher(paths []string, log logrus.FieldLogger) *FileWatcher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	w := &FileWatcher{
		files:    make(map[string]struct{}, len(paths)),
		debounce: defaultDebounce,
		log:      log,
		out:      make(chan keys.Event),
		stop:     make(chan struct{}),
	}
	seenDirs := make(map[string]struct{})
	for _, p := range paths {
		clean := filepath.Clean(p)
		w.files[clean] = struct{}{}
		dir := filepath.Dir(clean)
		if _, ok := seenDirs[dir]; !ok {
			seenDirs[dir] = struct{}{}
			w.dirs = append(w.dirs, dir)
		}
	}
	return w
}

func (w *FileWatcher) Start() (<-chan keys.Event, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, apperr.New(apperr.SourceFailed, "create file watcher", err)
	}
	for _, dir := range w.dirs {
		if err := fsWatcher.Add(dir); err != nil {
			_ = fsWatcher.Close()
			return nil, apperr.New(apperr.SourceFailed, fmt.Sprintf("watch %s", dir), err)
		}
	}
	w.fsWatcher = fsWatcher
	go w.run()
	return w.out, nil
}

// run reports a path once its events have been quiet for the debounce
// interval, so a save that truncates and then writes is seen after the last
// write.
func (w *FileWatcher) run() {
	defer close(w.out)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	var pending []string
	queued := make(map[string]bool)

	for {
		select {
		case <-w.stop:
			return
		case ev, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			path := filepath.Clean(ev.Name)
			if _, watched := w.files[path]; !watched {
				continue
			}
			w.log.WithFields(logrus.Fields{"path": path, "op": ev.Op.String()}).Debug("file changed")
			if !queued[path] {
				queued[path] = true
				pending = append(pending, path)
			}
			timer.Reset(w.debounce)
		case <-timer.C:
			for _, path := range pending {
				select {
				case w.out <- keys.FileChanged(path):
				case <-w.stop:
					return
				}
			}
			pending = pending[:0]
			clear(queued)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Warn("file watcher error")
		}
	}
}

func (w *FileWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.stop)
		if w.fsWatcher != nil {
			err = w.fsWatcher.Close()
		}
	})
	return err
}
