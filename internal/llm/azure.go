package llm

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/ai/azopenai"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"

	"github.com/promptforge/promptforge/internal/config"
)

type azureCompleter struct {
	client       *azopenai.Client
	deploymentID string
}

// newAzureCompleter uses llm.endpoint as the resource endpoint and llm.model
// as the deployment name.
func newAzureCompleter(cfg *config.Config, apiKey string) (*azureCompleter, error) {
	if cfg.LLM.Endpoint == "" {
		return nil, fmt.Errorf("azure provider requires llm.endpoint")
	}
	if cfg.LLM.Model == "" {
		return nil, fmt.Errorf("azure provider requires llm.model (the deployment name)")
	}
	keyCredential := azcore.NewKeyCredential(apiKey)
	client, err := azopenai.NewClientWithKeyCredential(cfg.LLM.Endpoint, keyCredential, nil)
	if err != nil {
		return nil, fmt.Errorf("create Azure OpenAI client: %w", err)
	}
	return &azureCompleter{client: client, deploymentID: cfg.LLM.Model}, nil
}

func (a *azureCompleter) Complete(ctx context.Context, req Request) (string, error) {
	var messages []azopenai.ChatRequestMessageClassification
	if req.System != "" {
		messages = append(messages, &azopenai.ChatRequestSystemMessage{
			Content: azopenai.NewChatRequestSystemMessageContent(req.System),
		})
	}
	messages = append(messages, &azopenai.ChatRequestUserMessage{
		Content: azopenai.NewChatRequestUserMessageContent(req.User),
	})

	opts := azopenai.ChatCompletionsOptions{
		DeploymentName: to.Ptr(a.deploymentID),
		Messages:       messages,
		Temperature:    to.Ptr(float32(req.Temperature)),
	}
	if req.MaxTokens > 0 {
		opts.MaxTokens = to.Ptr(int32(req.MaxTokens))
	}

	resp, err := a.client.GetChatCompletions(ctx, opts, nil)
	if err != nil {
		return "", fmt.Errorf("azure openai request: %w", err)
	}
	if len(resp.Choices) > 0 && resp.Choices[0].Message != nil && resp.Choices[0].Message.Content != nil {
		return *resp.Choices[0].Message.Content, nil
	}
	return "", fmt.Errorf("azure openai: %w", ErrEmptyResponse)
}
