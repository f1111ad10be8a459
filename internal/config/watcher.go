package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// reloadDelay lets editors finish writing before the file is parsed
const reloadDelay = 200 * time.Millisecond

// Watcher reloads the config file when it changes on disk
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	updates chan *Config
	logger  *logrus.Logger
}

// NewWatcher starts watching the directory holding configPath. The directory
// is watched instead of the file so atomic saves (rename over) are seen.
func NewWatcher(configPath string, logger *logrus.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}

	absPath, err := filepath.Abs(configPath)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch config directory: %w", err)
	}

	return &Watcher{
		path:    absPath,
		watcher: fsw,
		updates: make(chan *Config, 1),
		logger:  logger,
	}, nil
}

// Updates delivers successfully reloaded configurations
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Run dispatches watcher events until ctx is cancelled
func (w *Watcher) Run(ctx context.Context) {
	defer w.watcher.Close()

	var pending <-chan time.Time
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
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = time.After(reloadDelay)
			}

		case <-pending:
			pending = nil
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.WithError(err).Error("Config watcher error")
		}
	}
}

func (w *Watcher) reload() {
	// Moved or deleted: keep running on the settings already applied
	if _, err := os.Stat(w.path); errors.Is(err, fs.ErrNotExist) {
		w.logger.WithField("config_path", w.path).Warn("Config file removed, keeping current settings")
		return
	}

	cfg, err := loadExisting(w.path)
	if err != nil {
		w.logger.WithError(err).WithField("config_path", w.path).Warn("Ignoring invalid config change")
		return
	}

	// Drop a reload nobody picked up yet; the newest one wins
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg

	w.logger.WithField("config_path", w.path).Info("Configuration reloaded")
}
