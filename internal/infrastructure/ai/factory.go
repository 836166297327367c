package ai

import (
	"fmt"
	"net/http"

	"github.com/pieronoviello/natsh/internal/domain"
	"github.com/pieronoviello/natsh/internal/ports"
)

// Factory creates provider variants. A single HTTP client with a request
// timeout is shared by the hand-rolled backends.
type Factory struct {
	secrets    ports.SecretStore
	httpClient *http.Client
}

// NewFactory builds a provider factory.
func NewFactory(secrets ports.SecretStore) *Factory {
	return &Factory{
		secrets:    secrets,
		httpClient: &http.Client{Timeout: domain.DefaultHTTPTimeout},
	}
}

// ForProvider implements ports.ProviderFactory.
func (f *Factory) ForProvider(name domain.ProviderName, model string) (ports.Provider, error) {
	if model == "" {
		model = domain.DefaultModels()[name]
	}
	switch name {
	case domain.ProviderGemini:
		return newGeminiProvider(model, f.secrets, f.httpClient), nil
	case domain.ProviderOpenAI:
		return newOpenAIProvider(model, f.secrets), nil
	case domain.ProviderClaude:
		return newClaudeProvider(model, f.secrets, f.httpClient), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", name)
	}
}

// statusError converts an HTTP failure into the message surfaced to the
// user. Rate limits and auth failures get actionable one-liners.
func statusError(code int, detail string) error {
	switch {
	case code == http.StatusTooManyRequests:
		return fmt.Errorf("rate limit hit - wait a moment and try again")
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("API key rejected - run !api to set a new key")
	default:
		return fmt.Errorf("HTTP %d: %s", code, detail)
	}
}

var _ ports.ProviderFactory = (*Factory)(nil)
