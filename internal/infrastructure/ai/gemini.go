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

const defaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models"

// geminiProvider talks to the Google Generative Language API.
type geminiProvider struct {
	model      string
	endpoint   string
	secrets    ports.SecretStore
	httpClient *http.Client
}

func newGeminiProvider(model string, secrets ports.SecretStore, client *http.Client) ports.Provider {
	return &geminiProvider{
		model:      model,
		endpoint:   defaultGeminiEndpoint,
		secrets:    secrets,
		httpClient: client,
	}
}

func (p *geminiProvider) Name() domain.ProviderName {
	return domain.ProviderGemini
}

func (p *geminiProvider) Translate(ctx context.Context, req domain.TranslationRequest) (string, error) {
	content, err := p.generate(ctx, buildTranslatePrompt(req))
	if err != nil {
		return "", err
	}
	return extractCommand(content), nil
}

func (p *geminiProvider) Explain(ctx context.Context, command string) (string, error) {
	return p.generate(ctx, buildExplainPrompt(command))
}

func (p *geminiProvider) generate(ctx context.Context, prompt string) (string, error) {
	apiKey, ok := p.secrets.Get(domain.ProviderGemini)
	if !ok {
		return "", domain.ErrMissingCredential
	}

	payload := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", &domain.TranslationError{Provider: domain.ProviderGemini, Cause: err}
	}

	url := fmt.Sprintf("%s/%s:generateContent", p.endpoint, p.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", &domain.TranslationError{Provider: domain.ProviderGemini, Cause: err}
	}
	httpReq.Header.Set("x-goog-api-key", apiKey)
	httpReq.Header.Set("content-type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", &domain.TranslationError{Provider: domain.ProviderGemini, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", &domain.TranslationError{
			Provider: domain.ProviderGemini,
			Cause:    statusError(resp.StatusCode, resp.Status),
		}
	}

	var decoded geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", &domain.TranslationError{Provider: domain.ProviderGemini, Cause: err}
	}
	text := decoded.FirstText()
	if text == "" {
		return "", &domain.TranslationError{
			Provider: domain.ProviderGemini,
			Cause:    fmt.Errorf("empty response"),
		}
	}
	return text, nil
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (r geminiResponse) FirstText() string {
	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return ""
	}
	return r.Candidates[0].Content.Parts[0].Text
}

var _ ports.Provider = (*geminiProvider)(nil)
