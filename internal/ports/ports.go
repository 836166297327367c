// Package ports defines the interfaces between the session core and the
// infrastructure adapters.
//
// Following the Ports and Adapters pattern, the dispatcher depends only on
// these abstractions; concrete implementations (JSON config files, SQLite
// history, HTTP providers) live in the infrastructure layer and are wired
// together by the app container.
package ports

import (
	"context"

	"github.com/pieronoviello/natsh/internal/domain"
)

// ConfigStore loads and saves the persistent session configuration.
// Save must be atomic: a crash mid-write never corrupts the previous file.
type ConfigStore interface {
	Load() (domain.Config, error)
	Save(domain.Config) error
	Path() string
}

// SecretStore holds per-provider API keys, separate from the main config
// payload so that printing the config never exposes them.
type SecretStore interface {
	Get(domain.ProviderName) (string, bool)
	Set(domain.ProviderName, string) error
}

// ProviderFactory builds a provider variant for the given backend and model.
type ProviderFactory interface {
	ForProvider(name domain.ProviderName, model string) (Provider, error)
}

// Provider is the uniform translation capability. Each variant encapsulates
// its own wire format and authentication; switching variants never requires
// dispatcher changes. Both methods fail with domain.ErrMissingCredential
// before any network call when no API key is stored.
type Provider interface {
	Name() domain.ProviderName
	Translate(ctx context.Context, req domain.TranslationRequest) (string, error)
	Explain(ctx context.Context, command string) (string, error)
}

// SafetyClassifier maps a candidate command to a danger verdict. Pure and
// deterministic: no I/O at classification time.
type SafetyClassifier interface {
	Classify(command string) domain.Assessment
}

// HistoryStore is the append-only, size-bounded command log. Append applies
// FIFO eviction; Tail returns the last n entries, most recent last.
// Unreadable stored data recovers to an empty history.
type HistoryStore interface {
	Append(domain.HistoryEntry) error
	Tail(n int) ([]domain.HistoryEntry, error)
	SetLimit(n int)
	Clear() error
	Path() string
}

// CommandExecutor runs a resolved command as a child process wired to the
// current terminal and blocks until it terminates.
type CommandExecutor interface {
	Run(ctx context.Context, command string, dir string) (int, error)
}

// ConfirmationPrompter gathers interactive decisions from the user.
// Confirm affirms only on a case-insensitive "y"; anything else declines.
type ConfirmationPrompter interface {
	Confirm(prompt string) (bool, error)
	ReadSecret(prompt string) (string, error)
}

// Logger is the structured logging abstraction used across the session.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
