package oracle

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"
)

const defaultAnthropicModel = "claude-sonnet-4-5-20250929"

// AnthropicClient implements Client against the Anthropic Messages API.
type AnthropicClient struct {
	client anthropic.Client
	model  string
	logger *zap.Logger
}

// NewAnthropicClient constructs the adapter. An empty model selects the
// default.
func NewAnthropicClient(apiKey, model string, logger *zap.Logger) *AnthropicClient {
	if model == "" {
		model = defaultAnthropicModel
	}
	return &AnthropicClient{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
		logger: logger,
	}
}

// Complete performs one messages round trip and returns the first text block.
func (c *AnthropicClient) Complete(ctx context.Context, p Prompt) (string, error) {
	maxTokens := p.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(maxTokens),
		System: []anthropic.TextBlockParam{
			{Text: p.System},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(p.User)),
		},
	})
	if err != nil {
		c.logger.Warn("anthropic call failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	for _, block := range message.Content {
		if block.Type == "text" {
			c.logger.Debug("anthropic response",
				zap.Int("size", len(block.Text)),
				zap.Int64("tokens_in", message.Usage.InputTokens),
				zap.Int64("tokens_out", message.Usage.OutputTokens))
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("%w: no text content in response", ErrMalformed)
}
