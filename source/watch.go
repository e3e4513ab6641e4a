package source

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher calls back when a sheet file changes, typically to invalidate a
// cached snapshot. Events are debounced because editors tend to write a
// file several times in quick succession.
type Watcher struct {
	path     string
	onChange func()
	fw       *fsnotify.Watcher
	done     chan struct{}
}

// Watch starts watching path and invokes onChange after each write settles.
func Watch(path string, onChange func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	// Watch the directory: editors often replace the file rather than
	// writing it in place.
	if err := fw.Add(filepath.Dir(absPath)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch directory: %w", err)
	}

	w := &Watcher{
		path:     absPath,
		onChange: onChange,
		fw:       fw,
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	debounce := time.NewTimer(500 * time.Millisecond)
	debounce.Stop()
	var pending <-chan time.Time

	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			eventPath, err := filepath.Abs(event.Name)
			if err == nil && eventPath == w.path {
				debounce.Reset(500 * time.Millisecond)
				pending = debounce.C
			}

		case <-pending:
			w.onChange()
			pending = nil

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)

		case <-w.done:
			return
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fw.Close()
}
