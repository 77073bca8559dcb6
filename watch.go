package urbandash

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watchAssets logs changes under the asset root and drops stale previews
// until ctx is done. Planning never depends on it: every plan stats the
// files again.
func (a *App) watchAssets(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("urbandash: create watcher: %w", err)
	}
	defer watcher.Close()

	dirs := map[string]struct{}{a.Planner.Root(): {}}
	for _, rel := range a.Manifest.Assets() {
		dirs[filepath.Dir(filepath.Join(a.Planner.Root(), filepath.FromSlash(rel)))] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			a.Logger.Warn("cannot watch asset dir", zap.String("dir", dir), zap.Error(err))
			continue
		}
		a.Logger.Debug("watching asset dir", zap.String("dir", dir))
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			a.handleAssetEvent(event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.Logger.Warn("asset watcher error", zap.Error(err))
		}
	}
}

func (a *App) handleAssetEvent(event fsnotify.Event) {
	var op string
	switch {
	case event.Has(fsnotify.Create):
		op = "create"
	case event.Has(fsnotify.Write):
		op = "modify"
	case event.Has(fsnotify.Remove):
		op = "delete"
	case event.Has(fsnotify.Rename):
		op = "rename"
	default:
		return
	}
	a.Thumbs.Invalidate(event.Name)
	a.Logger.Info("asset changed", zap.String("op", op), zap.String("path", event.Name))
}
