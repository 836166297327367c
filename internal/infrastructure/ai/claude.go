package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pieronoviello/natsh/internal/domain"
	"github.com/pieronoviello/natsh/internal/ports"
)

const defaultClaudeEndpoint = "https://api.anthropic.com/v1/messages"

// claudeProvider talks to the Anthropic Messages API.
type claudeProvider struct {
	model      string
	endpoint   string
	secrets    ports.SecretStore
	httpClient *http.Client
}

func newClaudeProvider(model string, secrets ports.SecretStore, client *http.Client) ports.Provider {
	return &claudeProvider{
		model:      model,
		endpoint:   defaultClaudeEndpoint,
		secrets:    secrets,
		httpClient: client,
	}
}

func (p *claudeProvider) Name() domain.ProviderName {
	return domain.ProviderClaude
}

func (p *claudeProvider) Translate(ctx context.Context, req domain.TranslationRequest) (string, error) {
	content, err := p.generate(ctx, buildTranslatePrompt(req))
	if err != nil {
		return "", err
	}
	return extractCommand(content), nil
}

func (p *claudeProvider) Explain(ctx context.Context, command string) (string, error) {
	return p.generate(ctx, buildExplainPrompt(command))
}

func (p *claudeProvider) generate(ctx context.Context, prompt string) (string, error) {
	apiKey, ok := p.secrets.Get(domain.ProviderClaude)
	if !ok {
		return "", domain.ErrMissingCredential
	}

	payload := claudeRequest{
		Model:     p.model,
		MaxTokens: domain.DefaultMaxTokens,
		Messages: []claudeMessage{
			{Role: "user", Content: prompt},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", &domain.TranslationError{Provider: domain.ProviderClaude, Cause: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &domain.TranslationError{Provider: domain.ProviderClaude, Cause: err}
	}
	httpReq.Header.Set("x-api-key", apiKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")
	httpReq.Header.Set("content-type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", &domain.TranslationError{Provider: domain.ProviderClaude, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", &domain.TranslationError{
			Provider: domain.ProviderClaude,
			Cause:    statusError(resp.StatusCode, resp.Status),
		}
	}

	var decoded claudeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", &domain.TranslationError{Provider: domain.ProviderClaude, Cause: err}
	}
	text := decoded.FirstText()
	if text == "" {
		return "", &domain.TranslationError{
			Provider: domain.ProviderClaude,
			Cause:    fmt.Errorf("empty response"),
		}
	}
	return text, nil
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

func (r claudeResponse) FirstText() string {
	if len(r.Content) == 0 {
		return ""
	}
	return r.Content[0].Text
}

var _ ports.Provider = (*claudeProvider)(nil)
