package llm

import (
	"fmt"
	"strings"
)

// Providers understood by NewClient.
const (
	ProviderOllama   = "ollama"
	ProviderOpenAI   = "openai"
	ProviderLMStudio = "lmstudio"
)

// Providers lists the accepted provider names.
func Providers() []string {
	return []string{ProviderOllama, ProviderOpenAI, ProviderLMStudio}
}

// NewClient creates an LLM client based on provider configuration.
func NewClient(provider, model, baseURL string) (Client, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", ProviderOllama:
		return NewOllamaClient(model, baseURL)
	case ProviderOpenAI:
		return NewOpenAIClient(model, baseURL)
	case ProviderLMStudio, "lm-studio":
		if baseURL == "" {
			baseURL = defaultLMStudioBaseURL
		}
		return NewOpenAIClient(model, baseURL)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}
