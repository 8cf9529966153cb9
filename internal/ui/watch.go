package ui

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher reports changes to a single file. The parent directory is
// watched because saves replace the file by renaming a temporary copy over it.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	target  string
	changes chan struct{}
	logger  *slog.Logger
	wg      sync.WaitGroup
}

// WatchFile starts watching path. Bursts of events collapse into a single
// pending notification on Changes.
func WatchFile(path string, logger *slog.Logger) (*FileWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	fw := &FileWatcher{
		watcher: watcher,
		target:  abs,
		changes: make(chan struct{}, 1),
		logger:  logger,
	}
	fw.wg.Add(1)
	go fw.eventLoop()
	return fw, nil
}

// Changes is closed when the watcher stops.
func (fw *FileWatcher) Changes() <-chan struct{} {
	return fw.changes
}

// Close stops the watcher and waits for the event loop to exit.
func (fw *FileWatcher) Close() error {
	err := fw.watcher.Close()
	fw.wg.Wait()
	return err
}

func (fw *FileWatcher) eventLoop() {
	defer fw.wg.Done()
	defer close(fw.changes)

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleEvent(event)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("watch error", "path", fw.target, "error", err)
		}
	}
}

func (fw *FileWatcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != fw.target {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return
	}
	fw.logger.Debug("data file changed", "path", fw.target, "op", event.Op.String())
	select {
	case fw.changes <- struct{}{}:
	default:
	}
}
