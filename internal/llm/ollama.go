package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	ollama "github.com/ollama/ollama/api"

	"github.com/promptforge/promptforge/internal/config"
)

const defaultOllamaModel = "llama3.1"

type ollamaCompleter struct {
	client *ollama.Client
	model  string
}

// newOllamaCompleter connects to llm.base_url when set, otherwise to the
// host named by OLLAMA_HOST.
func newOllamaCompleter(cfg *config.Config) (*ollamaCompleter, error) {
	model := cfg.LLM.Model
	if model == "" {
		model = defaultOllamaModel
	}
	var client *ollama.Client
	if cfg.LLM.BaseURL != "" {
		base, err := url.Parse(cfg.LLM.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("parse ollama base url: %w", err)
		}
		client = ollama.NewClient(base, &http.Client{Timeout: cfg.LLM.Timeout})
	} else {
		c, err := ollama.ClientFromEnvironment()
		if err != nil {
			return nil, fmt.Errorf("could not create ollama client: %w", err)
		}
		client = c
	}
	return &ollamaCompleter{client: client, model: model}, nil
}

func (o *ollamaCompleter) Complete(ctx context.Context, req Request) (string, error) {
	var messages []ollama.Message
	if req.System != "" {
		messages = append(messages, ollama.Message{Role: "system", Content: req.System})
	}
	messages = append(messages, ollama.Message{Role: "user", Content: req.User})

	options := map[string]interface{}{
		"temperature": req.Temperature,
	}
	if req.MaxTokens > 0 {
		options["num_predict"] = req.MaxTokens
	}
	stream := false
	chatReq := &ollama.ChatRequest{
		Model:    o.model,
		Messages: messages,
		Stream:   &stream,
		Options:  options,
	}

	var out strings.Builder
	respFunc := func(res ollama.ChatResponse) error {
		out.WriteString(res.Message.Content)
		return nil
	}
	if err := o.client.Chat(ctx, chatReq, respFunc); err != nil {
		return "", fmt.Errorf("ollama chat failed: %w", err)
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("ollama: %w", ErrEmptyResponse)
	}
	return out.String(), nil
}
