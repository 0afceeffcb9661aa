// Package watch turns writes to a draft file into text-change events.
package watch

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher emits the full content of one file each time it changes.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	path    string

	// Load reads the file's text. It defaults to the raw bytes; set it
	// before Watch to extract text from other formats. A failed load is
	// logged and skipped, so a half-written file is retried on its next
	// event.
	Load func(path string) (string, error)
}

func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	return string(data), err
}

// NewFileWatcher creates a watcher for path. The file need not exist yet.
func NewFileWatcher(path string) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}
	if dir, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		abs = filepath.Join(dir, filepath.Base(abs))
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	return &FileWatcher{watcher: w, path: abs, Load: readText}, nil
}

// Watch starts monitoring and returns a channel of file contents. The parent
// directory is watched so editors that save by rename are still seen.
// Identical consecutive contents are sent once. The channel closes when ctx
// is done or the watcher is stopped.
func (w *FileWatcher) Watch(ctx context.Context) (<-chan string, error) {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}

	load := w.Load
	if load == nil {
		load = readText
	}
	texts := make(chan string, 16)

	go func() {
		defer close(texts)
		var last string
		sent := false
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
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				text, err := load(w.path)
				if err != nil {
					log.Printf("warning: read %s: %v", w.path, err)
					continue
				}
				if sent && text == last {
					continue
				}
				last, sent = text, true

				select {
				case texts <- text:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				log.Printf("warning: watcher: %v", err)
			}
		}
	}()

	return texts, nil
}

// Path returns the absolute path being watched.
func (w *FileWatcher) Path() string { return w.path }

// Stop stops the watcher.
func (w *FileWatcher) Stop() error {
	return w.watcher.Close()
}
