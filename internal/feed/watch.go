package feed

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch refreshes the sink whenever the db file at dbPath (or its WAL/SHM siblings) changes.
// Bursts of writes are coalesced: a refresh runs once no event has arrived for debounce.
// Watch returns once the watcher is running; it stops when ctx is done.
func (f *Feeder) Watch(ctx context.Context, dbPath string, debounce time.Duration) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("feed: create watcher: %w", err)
	}
	dir := filepath.Dir(dbPath)
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return fmt.Errorf("feed: watch %s: %w", dir, err)
	}
	if debounce <= 0 {
		debounce = 150 * time.Millisecond
	}

	base := filepath.Base(dbPath)
	go f.loop(ctx, fw, base, debounce)
	return nil
}

func (f *Feeder) loop(ctx context.Context, fw *fsnotify.Watcher, base string, debounce time.Duration) {
	defer fw.Close()

	ticker := time.NewTicker(debounce / 2)
	defer ticker.Stop()

	var pendingSince time.Time
	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			if !strings.HasPrefix(filepath.Base(ev.Name), base) {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				pendingSince = time.Now()
			}

		case _, ok := <-fw.Errors:
			if !ok {
				return
			}
			// We can't tell what changed; refresh everything.
			pendingSince = time.Now()

		case <-ticker.C:
			if pendingSince.IsZero() || time.Since(pendingSince) < debounce {
				continue
			}
			pendingSince = time.Time{}
			// Failures reach the OnError callback.
			_ = f.Refresh(ctx)
		}
	}
}
