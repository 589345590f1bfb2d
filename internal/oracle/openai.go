package oracle

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIClient implements Client against the OpenAI chat completions API.
type OpenAIClient struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewOpenAIClient constructs the adapter. An empty model selects the default.
func NewOpenAIClient(apiKey, model string, logger *zap.Logger) *OpenAIClient {
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
		logger: logger,
	}
}

// Complete performs one chat completion round trip.
func (c *OpenAIClient) Complete(ctx context.Context, p Prompt) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.System},
			{Role: openai.ChatMessageRoleUser, Content: p.User},
		},
	}
	if p.MaxTokens > 0 {
		req.MaxTokens = p.MaxTokens
	}
	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		c.logger.Warn("openai call failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrMalformed)
	}
	c.logger.Debug("openai response",
		zap.Int("size", len(resp.Choices[0].Message.Content)),
		zap.Int("tokens_in", resp.Usage.PromptTokens),
		zap.Int("tokens_out", resp.Usage.CompletionTokens))
	return resp.Choices[0].Message.Content, nil
}
