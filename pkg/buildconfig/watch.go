package buildconfig

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/Layr-Labs/vyperkit/pkg/common/iface"
	"github.com/fsnotify/fsnotify"
)

// reloadDebounce collapses the burst of events editors emit on save
const reloadDebounce = 250 * time.Millisecond

// Watcher holds the current record and reloads it when the file changes.
// A reload that fails to load or validate keeps the previous record.
type Watcher struct {
	path   string
	logger iface.Logger

	mu      sync.RWMutex
	current *BuildConfiguration

	subMu       sync.Mutex
	subscribers []chan<- *BuildConfiguration
}

// NewWatcher loads and validates the record at path
func NewWatcher(path string, logger iface.Logger) (*Watcher, error) {
	cfg, err := loadValid(path)
	if err != nil {
		return nil, err
	}
	return &Watcher{path: path, logger: logger, current: cfg}, nil
}

// Current returns the last valid record
func (w *Watcher) Current() *BuildConfiguration {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Subscribe registers ch to receive every successfully reloaded record.
// Sends never block; a full channel misses the update.
func (w *Watcher) Subscribe(ch chan<- *BuildConfiguration) {
	w.subMu.Lock()
	defer w.subMu.Unlock()
	w.subscribers = append(w.subscribers, ch)
}

// Reload reads the file again and swaps the record in when it is valid
func (w *Watcher) Reload() error {
	cfg, err := loadValid(w.path)
	if err != nil {
		w.logger.Error("Reload of %s failed, keeping previous config: %v", w.path, err)
		return err
	}

	w.mu.Lock()
	w.current = cfg
	w.mu.Unlock()

	w.logger.Info("Reloaded %s", w.path)
	w.notify(cfg)
	return nil
}

// Start watches the directory holding the file until ctx is cancelled.
// The directory is watched so editors that save via rename are seen.
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		_ = fw.Close()
		return fmt.Errorf("watch %s: %w", w.path, err)
	}
	w.logger.Debug("Watching %s for changes", w.path)

	go w.loop(ctx, fw)
	return nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher) {
	defer fw.Close()

	target := filepath.Clean(w.path)
	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(reloadDebounce, func() {
				if ctx.Err() != nil {
					return
				}
				_ = w.Reload()
			})
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Config watcher error: %v", err)
		}
	}
}

func (w *Watcher) notify(cfg *BuildConfiguration) {
	w.subMu.Lock()
	defer w.subMu.Unlock()
	for _, ch := range w.subscribers {
		select {
		case ch <- cfg:
		default:
		}
	}
}

func loadValid(path string) (*BuildConfiguration, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}
	return cfg, nil
}
