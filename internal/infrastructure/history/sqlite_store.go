package history

import (
	"database/sql"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pieronoviello/natsh/internal/domain"
	"github.com/pieronoviello/natsh/internal/ports"
)

// SQLiteStore persists history in ~/.natsh/history.db. When the database
// cannot be opened or initialized it degrades to the JSON file store so a
// broken driver never takes the session down.
type SQLiteStore struct {
	db       *sql.DB
	path     string
	limit    int
	fallback *FileStore
	mu       sync.Mutex
}

// NewSQLiteStore opens (or creates) the history database.
func NewSQLiteStore(path string, limit int) *SQLiteStore {
	if path == "" {
		path = filepath.Join(defaultDir(), "history.db")
	}
	if limit < 1 {
		limit = domain.DefaultMaxHistory
	}
	store := &SQLiteStore{path: path, limit: limit}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		store.fallback = NewFileStore("", limit)
		return store
	}
	store.db = db
	if err := store.init(); err != nil {
		db.Close()
		store.db = nil
		store.fallback = NewFileStore("", limit)
	}
	return store
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS entries (
		id TEXT PRIMARY KEY,
		timestamp TEXT,
		input TEXT,
		command TEXT,
		executed INTEGER,
		exit_code INTEGER,
		cwd TEXT
	);`)
	return err
}

// Append implements ports.HistoryStore. The trailing DELETE enforces the
// FIFO bound at append time.
func (s *SQLiteStore) Append(entry domain.HistoryEntry) error {
	if s.db == nil {
		return s.fallback.Append(entry)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO entries (id, timestamp, input, command, executed, exit_code, cwd)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Timestamp.Format(time.RFC3339),
		entry.Input,
		entry.Command,
		boolToInt(entry.Executed),
		entry.ExitCode,
		entry.Cwd,
	)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`DELETE FROM entries WHERE rowid NOT IN (
		SELECT rowid FROM entries ORDER BY rowid DESC LIMIT ?)`, s.limit)
	return err
}

// Tail implements ports.HistoryStore; entries come back oldest first.
func (s *SQLiteStore) Tail(n int) ([]domain.HistoryEntry, error) {
	if s.db == nil {
		return s.fallback.Tail(n)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `SELECT id, timestamp, input, command, executed, exit_code, cwd
		FROM entries ORDER BY rowid DESC`
	var args []interface{}
	if n > 0 {
		query += " LIMIT ?"
		args = append(args, n)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var newestFirst []domain.HistoryEntry
	for rows.Next() {
		var entry domain.HistoryEntry
		var ts string
		var executed int
		if err := rows.Scan(&entry.ID, &ts, &entry.Input, &entry.Command, &executed, &entry.ExitCode, &entry.Cwd); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			entry.Timestamp = t
		}
		entry.Executed = executed == 1
		newestFirst = append(newestFirst, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	entries := make([]domain.HistoryEntry, 0, len(newestFirst))
	for i := len(newestFirst) - 1; i >= 0; i-- {
		entries = append(entries, newestFirst[i])
	}
	return entries, nil
}

// SetLimit adjusts the FIFO bound for subsequent appends.
func (s *SQLiteStore) SetLimit(n int) {
	if n < 1 {
		return
	}
	s.mu.Lock()
	s.limit = n
	s.mu.Unlock()
	if s.fallback != nil {
		s.fallback.SetLimit(n)
	}
}

// Clear deletes all history entries.
func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return s.fallback.Clear()
	}
	_, err := s.db.Exec("DELETE FROM entries")
	return err
}

// Path returns the database location (or the fallback file when degraded).
func (s *SQLiteStore) Path() string {
	if s.db == nil {
		return s.fallback.Path()
	}
	return s.path
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.HistoryStore = (*SQLiteStore)(nil)
