// Package completion implements the Completion external interface
// (spec.md §6): complete(systemPrompt, userPrompt) -> text, temperature
// 0.7, max output 500 tokens. The only caller is CHM's nudge generator.
package completion

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/resonate/core/internal/ratelimit"
)

const (
	nudgeTemperature = 0.7
	nudgeMaxTokens   = 500
)

type OpenAICompleter struct {
	client  *openai.Client
	model   string
	limiter *ratelimit.Limiter
}

func NewOpenAICompleter(apiKey, baseURL, model string, limiter *ratelimit.Limiter) *OpenAICompleter {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAICompleter{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		limiter: limiter,
	}
}

func (c *OpenAICompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("completion: rate limiter: %w", err)
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: nudgeTemperature,
		MaxTokens:   nudgeMaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("completion: create: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
