package localstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	docsRepo "docshelf/internal/domain/repositories/docs"

	"github.com/fsnotify/fsnotify"
)

// Subscribe watches the blob file and emits a change event whenever it is
// rewritten. The watch covers the parent directory because the atomic
// rename in save replaces the file inode. Events are best-effort: they
// may coalesce or repeat, and consumers are expected to rebuild
// idempotently.
func (s *Store) Subscribe(ctx context.Context) (<-chan docsRepo.Change, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	// The directory must exist before it can be watched, even when no
	// blob has been written yet.
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	changes := make(chan docsRepo.Change, 1)

	go func() {
		defer watcher.Close()
		defer close(changes)

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != s.path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				// Non-blocking send: a pending event already forces a
				// rebuild that will see this write too.
				select {
				case changes <- docsRepo.Change{Key: collectionKey}:
				default:
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warn("file watcher error", "path", s.path, "error", err)
			}
		}
	}()

	return changes, nil
}

var _ docsRepo.ChangeNotifier = (*Store)(nil)
