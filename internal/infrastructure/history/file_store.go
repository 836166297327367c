// Package history persists the bounded, append-only command log.
package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pieronoviello/natsh/internal/domain"
	"github.com/pieronoviello/natsh/internal/ports"
)

// FileStore keeps history as a JSON array in ~/.natsh/history.json. It is
// the fallback backend when the SQLite database cannot be opened.
type FileStore struct {
	path  string
	limit int
	mu    sync.Mutex
}

// NewFileStore creates a file-backed store; an empty path selects the
// default location.
func NewFileStore(path string, limit int) *FileStore {
	if path == "" {
		path = filepath.Join(defaultDir(), "history.json")
	}
	if limit < 1 {
		limit = domain.DefaultMaxHistory
	}
	return &FileStore{path: path, limit: limit}
}

// Append implements ports.HistoryStore. FIFO eviction happens here: after
// the append, only the newest limit entries survive.
func (f *FileStore) Append(entry domain.HistoryEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries := f.loadAll()
	entries = append(entries, entry)
	if len(entries) > f.limit {
		entries = entries[len(entries)-f.limit:]
	}
	return f.writeAll(entries)
}

// Tail implements ports.HistoryStore; entries come back oldest first.
func (f *FileStore) Tail(n int) ([]domain.HistoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries := f.loadAll()
	if n > 0 && len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}

// SetLimit adjusts the FIFO bound for subsequent appends.
func (f *FileStore) SetLimit(n int) {
	if n < 1 {
		return
	}
	f.mu.Lock()
	f.limit = n
	f.mu.Unlock()
}

// Clear removes the history file.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path returns the backing file location.
func (f *FileStore) Path() string {
	return f.path
}

// loadAll reads the stored entries. Corruption is non-fatal: an unreadable
// or malformed file recovers to an empty history.
func (f *FileStore) loadAll() []domain.HistoryEntry {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil
	}
	var entries []domain.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil
	}
	return entries
}

func (f *FileStore) writeAll(entries []domain.HistoryEntry) error {
	if err := os.MkdirAll(filepath.Dir(f.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".history-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, f.path)
}

func defaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".natsh")
}

var _ ports.HistoryStore = (*FileStore)(nil)
