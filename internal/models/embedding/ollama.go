package embedding

import (
	"context"
	"fmt"

	"github.com/ollama/ollama/api"

	"github.com/resonate/core/internal/types/interfaces"
)

// OllamaEmbedder is a local-model alternative to OpenAIEmbedder,
// routed through Ollama. cmd/worker wires OpenAIEmbedder only. The
// client is built from the environment (OLLAMA_HOST), so
// NewOllamaEmbedder's baseURL argument is not used.
type OllamaEmbedder struct {
	client *api.Client
	model  string
	dims   int
}

func NewOllamaEmbedder(baseURL, model string, dims int) (*OllamaEmbedder, error) {
	client, err := api.ClientFromEnvironment()
	if err != nil {
		return nil, fmt.Errorf("embedding: ollama client: %w", err)
	}
	return &OllamaEmbedder{client: client, model: model, dims: dims}, nil
}

func (e *OllamaEmbedder) Embed(ctx context.Context, text string) (interfaces.EmbeddingResult, error) {
	resp, err := e.client.Embeddings(ctx, &api.EmbeddingRequest{Model: e.model, Prompt: text})
	if err != nil {
		return interfaces.EmbeddingResult{}, fmt.Errorf("embedding: ollama: %w", err)
	}
	vec := make([]float32, len(resp.Embedding))
	for i, v := range resp.Embedding {
		vec[i] = float32(v)
	}
	return interfaces.EmbeddingResult{Vector: vec}, nil
}
