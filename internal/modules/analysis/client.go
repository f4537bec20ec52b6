package analysis

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// CompletionClient is the text-completion collaborator: prompt in,
// natural-language text out. No retry or streaming.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

var _ CompletionClient = (*OpenAIClient)(nil)

type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient builds the chat-completion client. baseURL is
// optional and overrides the provider endpoint for tests and local
// gateways.
func NewOpenAIClient(apiKey, baseURL, model string) *OpenAIClient {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	response, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", err
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("completion response contains no choices")
	}

	return response.Choices[0].Message.Content, nil
}
