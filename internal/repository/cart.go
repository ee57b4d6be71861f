package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/myanycart/anycart-go/internal/model"
)

const cartFile = "cart.json"

// CartStore persists the cart line items as a JSON array in the data
// directory and can watch that file for changes made by another process.
// Loads fail soft to an empty list; saves are best-effort atomic writes.
type CartStore struct {
	mu        sync.Mutex
	path      string
	lastWrite []byte // last payload written by this store, for echo suppression
}

// NewCartStore creates a CartStore rooted at the given data directory.
func NewCartStore(dataDir string) *CartStore {
	return &CartStore{path: filepath.Join(dataDir, cartFile)}
}

// Load reads the persisted item list. A missing, unreadable or unparseable
// file reads as an empty cart.
func (s *CartStore) Load() []model.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return decodeItems(readFile(s.path))
}

// Save persists the full item list. Best-effort: errors are logged and
// swallowed, leaving the in-memory state authoritative for this process.
func (s *CartStore) Save(items []model.LineItem) {
	if items == nil {
		items = []model.LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		slog.Debug("encoding cart failed", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := writeFileAtomic(s.path, data, 0o644); err != nil {
		slog.Debug("persisting cart failed", "error", err)
		return
	}
	s.lastWrite = data
}

// Watch emits the new item list whenever another process rewrites the cart
// file. Writes made through this store are suppressed so a save does not
// echo back to its own subscriber. The watcher stops when ctx is done.
func (s *CartStore) Watch(ctx context.Context) (<-chan []model.LineItem, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory, not the file: atomic saves replace the file by
	// rename, which would silently detach a file-level watch.
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	updates := make(chan []model.LineItem)

	go func() {
		defer watcher.Close()
		defer close(updates)

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Debug("cart watch error", "error", err)
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != cartFile {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}

				items, external := s.readExternal()
				if !external {
					continue
				}
				select {
				case updates <- items:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return updates, nil
}

// readExternal reads the current file contents and reports whether they
// differ from the last payload this store wrote itself.
func (s *CartStore) readExternal() ([]model.LineItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := readFile(s.path)
	if data != nil && bytes.Equal(data, s.lastWrite) {
		return nil, false
	}
	s.lastWrite = data
	return decodeItems(data), true
}

func decodeItems(data []byte) []model.LineItem {
	if data == nil {
		return []model.LineItem{}
	}
	var items []model.LineItem
	if err := json.Unmarshal(data, &items); err != nil || items == nil {
		return []model.LineItem{}
	}
	return items
}
