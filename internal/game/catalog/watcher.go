package catalog

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 500 * time.Millisecond

// Watcher reloads the registry when the catalog file changes on disk.
// A broken edit is logged and skipped; the registry keeps serving the
// last good content.
type Watcher struct {
	path     string
	registry *Registry
	watcher  *fsnotify.Watcher
	log      *slog.Logger
}

// NewWatcher sets up a file watcher for the catalog file. The parent
// directory is watched rather than the file itself so atomic
// rename-into-place saves keep triggering reloads.
func NewWatcher(path string, registry *Registry, log *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}

	if log == nil {
		log = slog.Default()
	}

	return &Watcher{
		path:     filepath.Clean(path),
		registry: registry,
		watcher:  fsw,
		log:      log,
	}, nil
}

// Start runs the reload loop until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	go w.loop(ctx)

	w.log.Info("catalog watcher started", slog.String("path", w.path))
}

// Stop closes the underlying filesystem watcher.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	var (
		debounce *time.Timer
		reload   <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			// Editors fire bursts of events per save; collapse them.
			if debounce == nil {
				debounce = time.NewTimer(reloadDebounce)
				reload = debounce.C
			} else {
				debounce.Reset(reloadDebounce)
			}

		case <-reload:
			debounce = nil
			reload = nil
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error("catalog watcher error", "error", err)
		}
	}
}

func (w *Watcher) reload() {
	content, err := LoadFile(w.path)
	if err != nil {
		w.log.Error("catalog reload failed, keeping previous content",
			slog.String("path", w.path), "error", err)
		return
	}

	w.registry.Load(content)
}
