// Package domain defines core business entities and value objects for natsh.
//
// The domain layer is independent of infrastructure concerns and represents
// pure business logic and data structures.
package domain

// ProviderName identifies an AI backend capable of translating natural
// language into shell commands.
type ProviderName string

const (
	ProviderGemini ProviderName = "gemini"
	ProviderOpenAI ProviderName = "openai"
	ProviderClaude ProviderName = "claude"
)

// KnownProviders returns the supported provider set in display order.
func KnownProviders() []ProviderName {
	return []ProviderName{ProviderGemini, ProviderOpenAI, ProviderClaude}
}

// Valid reports whether the name is a supported provider.
func (p ProviderName) Valid() bool {
	switch p {
	case ProviderGemini, ProviderOpenAI, ProviderClaude:
		return true
	}
	return false
}

// KeyEnvVar returns the environment variable that carries the provider's
// API key. The secret store uses the same names inside ~/.natsh/.env.
func (p ProviderName) KeyEnvVar() string {
	switch p {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderClaude:
		return "ANTHROPIC_API_KEY"
	default:
		return "GEMINI_API_KEY"
	}
}

// ConsoleURL returns where the user can obtain an API key for the provider.
func (p ProviderName) ConsoleURL() string {
	switch p {
	case ProviderOpenAI:
		return "https://platform.openai.com/api-keys"
	case ProviderClaude:
		return "https://console.anthropic.com/settings/keys"
	default:
		return "https://aistudio.google.com/apikey"
	}
}

// Config is the persistent session configuration, serialized as a single
// JSON object in ~/.natsh/config.json. Secrets are never part of it.
type Config struct {
	Provider   ProviderName            `json:"provider"`
	Model      map[ProviderName]string `json:"model"`
	SafeMode   bool                    `json:"safe_mode"`
	MaxHistory int                     `json:"max_history"`
	Aliases    map[string]string       `json:"aliases"`
}

// DefaultConfig returns the documented defaults: provider=gemini,
// safe_mode=true, max_history=100, one default model per provider.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderGemini,
		Model:      DefaultModels(),
		SafeMode:   true,
		MaxHistory: DefaultMaxHistory,
		Aliases:    map[string]string{},
	}
}

// DefaultModels returns the per-provider default model identifiers.
func DefaultModels() map[ProviderName]string {
	return map[ProviderName]string{
		ProviderGemini: "gemini-2.5-flash",
		ProviderOpenAI: "gpt-4o-mini",
		ProviderClaude: "claude-3-haiku-20240307",
	}
}

// ActiveModel returns the model configured for the active provider.
func (c Config) ActiveModel() string {
	if m, ok := c.Model[c.Provider]; ok && m != "" {
		return m
	}
	return DefaultModels()[c.Provider]
}
