package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

const reloadOps = fsnotify.Create | fsnotify.Write | fsnotify.Rename

// Watch reloads path whenever it changes and passes the new Config to onChange.
// The parent directory is watched, so a file replaced by rename keeps being followed.
// A reload that fails keeps the previous config. Watch returns when ctx is done.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	target := filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}

	log.WithField("path", target).Info("Watching config for changes")

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || event.Op&reloadOps == 0 {
				continue
			}
			// Renamed away with nothing in its place yet; the follow-up Create reloads it.
			if _, err := os.Stat(target); err != nil {
				continue
			}

			cfg, err := Load(target)
			if err != nil {
				log.WithFields(log.Fields{
					"path":  target,
					"error": err,
				}).Error("Config reload failed, keeping previous config")
				continue
			}

			log.WithField("path", target).Info("Config reloaded")
			onChange(cfg)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Error("Config watcher error")
		}
	}
}
