package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

var videoExtensions = map[string]bool{
	".mp4": true, ".mov": true, ".avi": true,
	".mkv": true, ".webm": true, ".m4v": true,
}

// Start blocks, dispatching each new video file in the watched directory to
// the handler until the context is canceled. In-flight handlers are waited
// for on shutdown.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Watching %s for new videos (max concurrent: %d)", w.inputDir, w.maxConcurrent)

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Watcher stopping; waiting for in-flight processing")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Op.Has(fsnotify.Create) || !isVideoFile(event.Name) {
				continue
			}

			w.logger.Info(ctx, "New video detected: %s", event.Name)

			// Give the writer a moment to finish the file.
			time.Sleep(500 * time.Millisecond)

			select {
			case w.semaphore <- struct{}{}:
			case <-ctx.Done():
				return ctx.Err()
			}

			wg.Add(1)
			go func(path string) {
				defer wg.Done()
				defer func() { <-w.semaphore }()
				if err := w.handler(ctx, path); err != nil {
					w.logger.Error(ctx, "Failed to process %s: %v", path, err)
				}
			}(event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the underlying fsnotify watcher.
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func isVideoFile(path string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(path))]
}
