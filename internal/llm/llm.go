// Package llm talks to the language model providers used for prompt
// generation.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/promptforge/promptforge/internal/config"
)

// ErrEmptyResponse is returned when a provider answers without any text.
var ErrEmptyResponse = errors.New("empty response from LLM")

// Request is a single system+user chat completion.
type Request struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

// Completer returns the model's reply to a Request.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Providers lists the accepted values of llm.provider.
var Providers = []string{"openai", "openai-compatible", "deepseek", "anthropic", "claude", "azure", "ollama"}

// New creates a Completer based on the config. Returns nil when the provider
// is unset, meaning generation runs without an LLM. apiKey overrides
// cfg.LLM.APIKey when non-empty.
func New(cfg *config.Config, apiKey string) (Completer, error) {
	if apiKey == "" {
		apiKey = cfg.LLM.APIKey
	}
	switch cfg.LLM.Provider {
	case "":
		return nil, nil
	case "openai", "openai-compatible":
		return newOpenAICompleter(cfg, apiKey, defaultOpenAIBaseURL, defaultOpenAIModel), nil
	case "deepseek":
		return newOpenAICompleter(cfg, apiKey, defaultDeepSeekBaseURL, defaultDeepSeekModel), nil
	case "anthropic", "claude":
		return newAnthropicCompleter(cfg, apiKey), nil
	case "azure":
		return newAzureCompleter(cfg, apiKey)
	case "ollama":
		return newOllamaCompleter(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %q", cfg.LLM.Provider)
	}
}

// KeyProvider maps a configured provider to the name its API key is stored
// under. Providers without keys map to "".
func KeyProvider(provider string) string {
	switch provider {
	case "openai", "openai-compatible":
		return "openai"
	case "anthropic", "claude":
		return "anthropic"
	case "ollama", "":
		return ""
	default:
		return provider
	}
}
