package world

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"arenagame/logger"
)

const watchDebounce = 100 * time.Millisecond

// Watcher reloads a map file when it changes on disk. Successfully parsed
// maps are delivered on Maps; parse and watch failures on Errors.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	tileSize float64
	Maps     chan *Map
	Errors   chan error
	closeCh  chan struct{}
	once     sync.Once
}

// NewWatcher watches the directory holding path so editors that replace the
// file on save are still picked up
func NewWatcher(path string, tileSize float64) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher:  fw,
		path:     abs,
		tileSize: tileSize,
		Maps:     make(chan *Map, 1),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	// editors emit bursts of events per save, reload once the burst settles
	var pending <-chan time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			pending = time.After(watchDebounce)
		case <-pending:
			pending = nil
			m, err := Load(w.path, w.tileSize)
			if err != nil {
				w.sendErr(err)
				continue
			}
			// keep only the newest map if the consumer is behind
			select {
			case <-w.Maps:
			default:
			}
			select {
			case w.Maps <- m:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendErr(err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) sendErr(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}

// Watch calls onChange with every successfully reloaded map until ctx is
// done. Reload failures are logged and the previous map stays in use.
func Watch(ctx context.Context, path string, tileSize float64, onChange func(*Map)) error {
	w, err := NewWatcher(path, tileSize)
	if err != nil {
		return err
	}
	defer w.Close()

	for {
		select {
		case m := <-w.Maps:
			logger.Log.WithField("path", path).Info("map reloaded")
			onChange(m)
		case err := <-w.Errors:
			logger.Log.WithError(err).WithField("path", path).Warn("map reload failed")
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
