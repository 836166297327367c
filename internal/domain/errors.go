package domain

import (
	"errors"
	"fmt"
)

// ErrMissingCredential is returned before any network call when the active
// provider has no stored API key. Recoverable via !api.
var ErrMissingCredential = errors.New("no API key for the active provider")

// ErrUnknownCommand marks an unrecognized or malformed meta-command.
var ErrUnknownCommand = errors.New("unknown command")

// TranslationError wraps a network, timeout, or parse failure from a
// provider. No retries are attempted; a fresh input is the retry mechanism.
type TranslationError struct {
	Provider ProviderName
	Cause    error
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("%s: translation failed: %v", e.Provider, e.Cause)
}

func (e *TranslationError) Unwrap() error {
	return e.Cause
}

// ConfigIOError reports an unreadable or unwritable config file. Reads fall
// back to defaults; writes surface the warning to the user.
type ConfigIOError struct {
	Op    string
	Path  string
	Cause error
}

func (e *ConfigIOError) Error() string {
	return fmt.Sprintf("config %s %s: %v", e.Op, e.Path, e.Cause)
}

func (e *ConfigIOError) Unwrap() error {
	return e.Cause
}
