package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"infobubble/pkg/logging"
)

// settleDelay gives editors that write in several steps time to finish.
const settleDelay = 100 * time.Millisecond

// Watcher reloads the layered configuration whenever one of its files
// changes.
type Watcher struct {
	explicitPath string
	files        []string
	onChange     func(Config)
	onError      func(error)
	watcher      *fsnotify.Watcher
}

// NewWatcher watches the user, project and explicit config files. Missing
// files are picked up once they are created, as long as their directory
// exists. onChange gets every successfully reloaded config; onError, which
// may be nil, gets reload failures.
func NewWatcher(explicitPath string, onChange func(Config), onError func(error)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}
	w := &Watcher{
		explicitPath: explicitPath,
		onChange:     onChange,
		onError:      onError,
		watcher:      fw,
	}

	var paths []string
	for _, get := range []func() (string, error){getUserConfigPath, getProjectConfigPath} {
		if p, err := get(); err == nil {
			paths = append(paths, p)
		}
	}
	if explicitPath != "" {
		paths = append(paths, explicitPath)
	}

	dirs := map[string]bool{}
	for _, p := range paths {
		p = filepath.Clean(p)
		w.files = append(w.files, p)
		dir := filepath.Dir(p)
		if dirs[dir] {
			continue
		}
		if err := fw.Add(dir); err != nil {
			logging.Debug("Config", "not watching %s: %v", dir, err)
			continue
		}
		dirs[dir] = true
	}
	if len(dirs) == 0 {
		fw.Close()
		return nil, fmt.Errorf("no config directory to watch")
	}
	return w, nil
}

// Run delivers reloads until ctx is done. It closes the underlying watcher
// on return.
func (w *Watcher) Run(ctx context.Context) {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(settleDelay):
			}
			w.drain()

			logging.Info("Config", "%s changed, reloading", event.Name)
			cfg, err := LoadConfig(w.explicitPath)
			if err != nil {
				logging.Error("Config", err, "reload failed")
				if w.onError != nil {
					w.onError(err)
				}
				continue
			}
			w.onChange(cfg)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Error("Config", err, "config watcher error")
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	name := filepath.Clean(event.Name)
	for _, f := range w.files {
		if f == name {
			return true
		}
	}
	return false
}

// drain drops events that piled up while settling so one save triggers one
// reload.
func (w *Watcher) drain() {
	for {
		select {
		case <-w.watcher.Events:
		default:
			return
		}
	}
}
