package ai

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/pieronoviello/natsh/internal/domain"
	"github.com/pieronoviello/natsh/internal/ports"
)

// openAIProvider wraps the go-openai chat completion client.
type openAIProvider struct {
	model   string
	baseURL string
	secrets ports.SecretStore
}

func newOpenAIProvider(model string, secrets ports.SecretStore) ports.Provider {
	return &openAIProvider{model: model, secrets: secrets}
}

func (p *openAIProvider) Name() domain.ProviderName {
	return domain.ProviderOpenAI
}

func (p *openAIProvider) Translate(ctx context.Context, req domain.TranslationRequest) (string, error) {
	content, err := p.generate(ctx, buildTranslatePrompt(req))
	if err != nil {
		return "", err
	}
	return extractCommand(content), nil
}

func (p *openAIProvider) Explain(ctx context.Context, command string) (string, error) {
	return p.generate(ctx, buildExplainPrompt(command))
}

func (p *openAIProvider) generate(ctx context.Context, prompt string) (string, error) {
	apiKey, ok := p.secrets.Get(domain.ProviderOpenAI)
	if !ok {
		return "", domain.ErrMissingCredential
	}

	cfg := openai.DefaultConfig(apiKey)
	if p.baseURL != "" {
		cfg.BaseURL = p.baseURL
	}
	client := openai.NewClientWithConfig(cfg)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     p.model,
		MaxTokens: domain.DefaultMaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", &domain.TranslationError{
				Provider: domain.ProviderOpenAI,
				Cause:    statusError(apiErr.HTTPStatusCode, apiErr.Message),
			}
		}
		return "", &domain.TranslationError{Provider: domain.ProviderOpenAI, Cause: err}
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &domain.TranslationError{
			Provider: domain.ProviderOpenAI,
			Cause:    fmt.Errorf("empty response"),
		}
	}
	return resp.Choices[0].Message.Content, nil
}

var _ ports.Provider = (*openAIProvider)(nil)
