package content

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// reloadDelay coalesces the burst of events editors emit on save.
const reloadDelay = 100 * time.Millisecond

// Watcher reloads a content file into a Holder whenever it changes.
// A file that fails to parse leaves the previous content in place.
type Watcher struct {
	path   string
	holder *Holder
	log    *zap.Logger
	w      *fsnotify.Watcher
}

// NewWatcher watches the directory containing path, which survives editors
// that save by rename.
func NewWatcher(path string, holder *Holder, log *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}
	return &Watcher{path: filepath.Clean(path), holder: holder, log: log, w: fw}, nil
}

// Run blocks until ctx is done, reloading on writes to the file.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.w.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-w.w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDelay)
			} else {
				timer.Reset(reloadDelay)
			}
			fire = timer.C
		case err, ok := <-w.w.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("content watcher error", zap.Error(err))
		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	c, err := Load(w.path)
	if err != nil {
		w.log.Error("content reload failed, keeping previous content", zap.Error(err))
		return
	}
	w.holder.Set(c)
	w.log.Info("content reloaded", zap.String("path", w.path))
}
