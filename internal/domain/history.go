package domain

import "time"

// HistoryEntry captures one resolved command attempt. Entries are immutable
// once written; insertion order is chronological and is the only meaningful
// order.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Input     string    `json:"input"`
	Command   string    `json:"command"`
	Executed  bool      `json:"executed"`
	ExitCode  int       `json:"exit_code"`
	Cwd       string    `json:"cwd"`
}
