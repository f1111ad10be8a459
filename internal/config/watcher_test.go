package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	t.Setenv(EnvVLCPassword, "")
	t.Setenv(EnvApplicationID, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := DefaultConfig().SaveToFile(path); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	watcher, err := NewWatcher(path, logger)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watcher.Run(ctx)

	cfg := DefaultConfig()
	cfg.Poll.DriftToleranceMs = 670
	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("Failed to rewrite config: %v", err)
	}

	select {
	case updated := <-watcher.Updates():
		if updated.Poll.DriftToleranceMs != 670 {
			t.Errorf("Expected reloaded drift tolerance 670, got %d", updated.Poll.DriftToleranceMs)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for config reload")
	}
}

func TestWatcherIgnoresInvalidChanges(t *testing.T) {
	t.Setenv(EnvVLCPassword, "")
	t.Setenv(EnvApplicationID, "")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := DefaultConfig().SaveToFile(path); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)

	watcher, err := NewWatcher(path, logger)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watcher.Run(ctx)

	// Unrelated files in the same directory are not reloads
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[poll]\ninterval_ms = 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-watcher.Updates():
		t.Errorf("Expected no update for an invalid config, got %+v", cfg.Poll)
	case <-time.After(time.Second):
	}
}

func TestWatcherIgnoresRenameAway(t *testing.T) {
	t.Setenv(EnvVLCPassword, "")
	t.Setenv(EnvApplicationID, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()
	cfg.Poll.DriftToleranceMs = 700
	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)

	watcher, err := NewWatcher(path, logger)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watcher.Run(ctx)

	if err := os.Rename(path, path+".bak"); err != nil {
		t.Fatalf("Failed to move config away: %v", err)
	}

	select {
	case updated := <-watcher.Updates():
		t.Errorf("Expected no update after the file was moved away, got drift=%d", updated.Poll.DriftToleranceMs)
	case <-time.After(time.Second):
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Expected config file to stay absent, stat returned %v", err)
	}
}
