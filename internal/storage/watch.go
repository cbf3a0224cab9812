package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// Watch reports changes to the storage file at path until ctx is done.
// Rewrites that leave the content unchanged are not reported.
func Watch(ctx context.Context, path string) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: atomic renames replace the file's inode.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	base := filepath.Base(path)
	lastSum := sumFile(path)
	changes := make(chan struct{}, 1)
	fired := make(chan struct{}, 1)

	go func() {
		defer watcher.Close()
		defer close(changes)

		var debounceTimer *time.Timer

		for {
			select {
			case <-ctx.Done():
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				name := filepath.Base(event.Name)
				if !strings.HasPrefix(name, base) || strings.HasSuffix(name, ".lock") || strings.HasSuffix(name, ".tmp") {
					continue
				}
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(watchDebounce, func() {
					select {
					case fired <- struct{}{}:
					default:
					}
				})

			case <-fired:
				sum := sumFile(path)
				if sum == lastSum {
					continue
				}
				lastSum = sum
				select {
				case changes <- struct{}{}:
				default:
				}

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return changes, nil
}

// sumFile hashes the file's content; a missing file hashes to zero.
func sumFile(path string) uint64 {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	return xxhash.Sum64(data)
}
