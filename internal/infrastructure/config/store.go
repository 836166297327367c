// Package config persists session configuration and secrets under the
// user's ~/.natsh directory.
package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pieronoviello/natsh/internal/domain"
	"github.com/pieronoviello/natsh/internal/ports"
)

// Store reads and writes the JSON configuration at ~/.natsh/config.json
// (overridable via NATSH_CONFIG). Saves are write-temp-then-rename so a
// crash mid-write never corrupts the previous valid file.
type Store struct {
	overridePath string
}

// NewStore builds a store; an empty path selects the default location.
func NewStore(path string) *Store {
	return &Store{overridePath: path}
}

// fileConfig mirrors domain.Config with pointer fields so that absent keys
// can be told apart from zero values when hydrating defaults. Unknown
// fields are ignored by encoding/json.
type fileConfig struct {
	Provider   string                         `json:"provider"`
	Model      map[domain.ProviderName]string `json:"model"`
	SafeMode   *bool                          `json:"safe_mode"`
	MaxHistory *int                           `json:"max_history"`
	Aliases    map[string]string              `json:"aliases"`
}

// Load implements ports.ConfigStore. A missing file yields defaults; an
// unreadable or malformed file also yields defaults but reports the cause.
func (s *Store) Load() (domain.Config, error) {
	path := s.Path()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.DefaultConfig(), &domain.ConfigIOError{Op: "read", Path: path, Cause: err}
	}

	var raw fileConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.DefaultConfig(), &domain.ConfigIOError{Op: "parse", Path: path, Cause: err}
	}

	return hydrate(raw), nil
}

// Save implements ports.ConfigStore.
func (s *Store) Save(cfg domain.Config) error {
	path := s.Path()
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return &domain.ConfigIOError{Op: "mkdir", Path: path, Cause: err}
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return &domain.ConfigIOError{Op: "encode", Path: path, Cause: err}
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), ".config-*.json")
	if err != nil {
		return &domain.ConfigIOError{Op: "write", Path: path, Cause: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &domain.ConfigIOError{Op: "write", Path: path, Cause: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &domain.ConfigIOError{Op: "write", Path: path, Cause: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &domain.ConfigIOError{Op: "replace", Path: path, Cause: err}
	}
	return nil
}

// Path returns the resolved config file location.
func (s *Store) Path() string {
	if s.overridePath != "" {
		return s.overridePath
	}
	if custom := os.Getenv("NATSH_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(StateDir(), "config.json")
}

// StateDir is the user-scoped directory holding config, secrets, rules and
// history.
func StateDir() string {
	return filepath.Join(userHomeDir(), ".natsh")
}

func hydrate(raw fileConfig) domain.Config {
	cfg := domain.DefaultConfig()

	if p := domain.ProviderName(strings.ToLower(raw.Provider)); p.Valid() {
		cfg.Provider = p
	}
	for provider, model := range raw.Model {
		if provider.Valid() && model != "" {
			cfg.Model[provider] = model
		}
	}
	if raw.SafeMode != nil {
		cfg.SafeMode = *raw.SafeMode
	}
	if raw.MaxHistory != nil && *raw.MaxHistory >= 1 {
		cfg.MaxHistory = *raw.MaxHistory
	}
	for name, command := range raw.Aliases {
		if domain.ValidAliasName(name) && command != "" {
			cfg.Aliases[name] = command
		}
	}
	return cfg
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(userHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

func userHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

var _ ports.ConfigStore = (*Store)(nil)
