package persistence

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dfryer1193/qrstore/gallery/domain"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// StoreEvent describes a change to an image file in the store directory
type StoreEvent struct {
	Name string
	Op   string
}

// StoreWatcher reports changes to allow-set files in the store directory,
// whether they come from this process or from outside it.
type StoreWatcher struct {
	dir      string
	watcher  *fsnotify.Watcher
	onChange func(StoreEvent)
}

// NewStoreWatcher starts watching dir. The directory must exist.
func NewStoreWatcher(dir string, onChange func(StoreEvent)) (*StoreWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch image directory: %w", err)
	}

	return &StoreWatcher{
		dir:      dir,
		watcher:  w,
		onChange: onChange,
	}, nil
}

// Run delivers events until ctx is cancelled or the watcher is closed
func (w *StoreWatcher) Run(ctx context.Context) error {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Str("dir", w.dir).Msg("Image directory watcher error")

		case <-ctx.Done():
			return nil
		}
	}
}

func (w *StoreWatcher) handle(event fsnotify.Event) {
	name := filepath.Base(event.Name)
	if !domain.AllowedFile(name) {
		return
	}

	var op string
	switch {
	case event.Has(fsnotify.Create):
		op = "create"
	case event.Has(fsnotify.Write):
		op = "write"
	case event.Has(fsnotify.Remove):
		op = "remove"
	case event.Has(fsnotify.Rename):
		op = "rename"
	default:
		return
	}

	if w.onChange != nil {
		w.onChange(StoreEvent{Name: name, Op: op})
	}
}

// Close stops the underlying watcher
func (w *StoreWatcher) Close() error {
	return w.watcher.Close()
}
