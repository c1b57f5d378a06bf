// Package embedding implements the Embedding external interface
// (spec.md §6): embed(text) -> vector<float32,1536>, with prompt/
// completion token counts and per-model USD cost, rate-limited by a
// process-wide sliding window (internal/ratelimit).
package embedding

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/resonate/core/internal/ratelimit"
	"github.com/resonate/core/internal/types/interfaces"
)

// per-1k-token USD pricing, used only for the cost field the Embedding
// interface reports (spec.md §6) — not billed anywhere in the core.
const costPer1kTokensUSD = 0.00013

// OpenAIEmbedder backs the Embedder interface with OpenAI's embeddings
// API, the way the teacher's provider.OpenAIProvider wraps each vendor.
type OpenAIEmbedder struct {
	client  *openai.Client
	model   string
	dims    int
	limiter *ratelimit.Limiter
}

func NewOpenAIEmbedder(apiKey, baseURL, model string, dims int, limiter *ratelimit.Limiter) *OpenAIEmbedder {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIEmbedder{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		dims:    dims,
		limiter: limiter,
	}
}

func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) (interfaces.EmbeddingResult, error) {
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return interfaces.EmbeddingResult{}, fmt.Errorf("embedding: rate limiter: %w", err)
		}
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
		Input:      []string{text},
		Model:      openai.EmbeddingModel(e.model),
		Dimensions: e.dims,
	})
	if err != nil {
		return interfaces.EmbeddingResult{}, fmt.Errorf("embedding: create: %w", err)
	}
	if len(resp.Data) == 0 {
		return interfaces.EmbeddingResult{}, fmt.Errorf("embedding: empty response")
	}

	promptTokens := resp.Usage.PromptTokens
	totalTokens := resp.Usage.TotalTokens
	cost := float64(totalTokens) / 1000 * costPer1kTokensUSD

	return interfaces.EmbeddingResult{
		Vector:           resp.Data[0].Embedding,
		PromptTokens:     promptTokens,
		CompletionTokens: 0,
		CostUSD:          cost,
	}, nil
}
