package engine

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ivlev/tweek/internal/logging"
	"github.com/ivlev/tweek/internal/system"
)

// Debounce drops repeated events for the same file within this window;
// editors often write a file in several steps.
const Debounce = 100 * time.Millisecond

// Watcher reports scenario files that changed in a set of directories.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher watches dirs for created or written scenario files.
func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
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
	defer close(w.Events)
	defer close(w.Errors)

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !isScenarioFile(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < Debounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- event.Name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func isScenarioFile(path string) bool {
	for _, ext := range system.ScenarioExtensions {
		if filepath.Ext(path) == ext {
			return true
		}
	}
	return false
}

// watchDirs returns the directories to watch for the configured paths:
// directories themselves and the parent of each file.
func watchDirs(paths []string) ([]string, error) {
	var dirs []string
	seen := make(map[string]bool)
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		dir := p
		if !fi.IsDir() {
			dir = filepath.Dir(p)
		}
		dir = filepath.Clean(dir)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs, nil
}

// Watch re-runs a scenario each time it is written until ctx is done.
// Scenarios that fail are reported and watching goes on.
func (p *Project) Watch(ctx context.Context) error {
	dirs, err := watchDirs(p.Config.ScenarioPaths)
	if err != nil {
		return err
	}
	w, err := NewWatcher(dirs...)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	fmt.Printf("[*] Watching %d directories for scenario changes...\n", len(dirs))
	for {
		select {
		case <-ctx.Done():
			return nil
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			logging.Logger().Debug("scenario changed", "path", path)
			res, err := p.RunScenario(ctx, path)
			if err != nil {
				log.Printf("[!] %v", err)
				continue
			}
			fmt.Printf("[>] Re-traced: %s -> %s (%d frames)\n", filepath.Base(path), res.Output, res.Frames)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("[!] Watch error: %v", err)
		}
	}
}
