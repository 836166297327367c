package history

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"), 10)

	want := entry(1)
	if err := store.Append(want); err != nil {
		t.Fatalf("Append: %v", err)
	}
	got, err := store.Tail(0)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d entries, want 1", len(got))
	}
	e := got[0]
	if e.ID != want.ID || e.Input != want.Input || e.Command != want.Command ||
		e.Executed != want.Executed || e.Cwd != want.Cwd {
		t.Fatalf("entry mismatch: got %+v, want %+v", e, want)
	}
	if !e.Timestamp.Equal(want.Timestamp) {
		t.Fatalf("timestamp = %v, want %v", e.Timestamp, want.Timestamp)
	}
}

func TestSQLiteStoreEvictsOldestBeyondLimit(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"), 3)
	for i := 0; i < 8; i++ {
		if err := store.Append(entry(i)); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := store.Tail(0)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	want := []string{"cmd-5", "cmd-6", "cmd-7"}
	if diff := cmp.Diff(want, commands(got)); diff != "" {
		t.Fatalf("eviction mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLiteStoreTailReturnsNewestLast(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"), 10)
	for i := 0; i < 5; i++ {
		if err := store.Append(entry(i)); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := store.Tail(2)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if diff := cmp.Diff([]string{"cmd-3", "cmd-4"}, commands(got)); diff != "" {
		t.Fatalf("tail mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLiteStoreClear(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"), 10)
	if err := store.Append(entry(1)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	got, err := store.Tail(0)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("entries survived Clear: %v", got)
	}
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	first := NewSQLiteStore(path, 10)
	if err := first.Append(entry(1)); err != nil {
		t.Fatalf("Append: %v", err)
	}

	second := NewSQLiteStore(path, 10)
	got, err := second.Tail(0)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(got) != 1 || got[0].Command != "cmd-1" {
		t.Fatalf("reopened store lost data: %v", got)
	}
}
