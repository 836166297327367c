package config

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pieronoviello/natsh/internal/domain"
	"github.com/pieronoviello/natsh/internal/ports"
)

// EnvFileStore keeps per-provider API keys in ~/.natsh/.env, one KEY=value
// per line, outside the JSON config so config dumps never expose them.
// The process environment acts as a read fallback so exported keys work
// without any setup.
type EnvFileStore struct {
	path string
	mu   sync.Mutex
}

// NewEnvFileStore builds a secret store; an empty path selects the default
// location under the state directory.
func NewEnvFileStore(path string) *EnvFileStore {
	if path == "" {
		path = filepath.Join(StateDir(), ".env")
	}
	return &EnvFileStore{path: path}
}

// Get implements ports.SecretStore.
func (s *EnvFileStore) Get(provider domain.ProviderName) (string, bool) {
	key := provider.KeyEnvVar()
	if vars, err := s.readAll(); err == nil {
		if value, ok := vars[key]; ok && value != "" {
			return value, true
		}
	}
	if value := os.Getenv(key); value != "" {
		return value, true
	}
	return "", false
}

// Set implements ports.SecretStore. Existing unrelated keys are preserved.
func (s *EnvFileStore) Set(provider domain.ProviderName, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	vars, err := s.readAll()
	if err != nil {
		vars = map[string]string{}
	}
	vars[provider.KeyEnvVar()] = value

	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirectoryPermissions); err != nil {
		return err
	}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var builder strings.Builder
	for _, k := range keys {
		builder.WriteString(k)
		builder.WriteByte('=')
		builder.WriteString(vars[k])
		builder.WriteByte('\n')
	}
	return os.WriteFile(s.path, []byte(builder.String()), domain.SecureFilePermissions)
}

// Path returns the backing file location.
func (s *EnvFileStore) Path() string {
	return s.path
}

func (s *EnvFileStore) readAll() (map[string]string, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	vars := map[string]string{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		vars[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return vars, scanner.Err()
}

var _ ports.SecretStore = (*EnvFileStore)(nil)
