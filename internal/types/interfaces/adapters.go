package interfaces

import (
	"context"
	"time"

	"github.com/resonate/core/internal/types"
)

// Cache is the typed KV + set API from spec.md §6. ttl==0 means no
// expiry.
type Cache interface {
	Get(ctx context.Context, key string, out any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	ScanDelete(ctx context.Context, pattern string) (int, error)
	SAdd(ctx context.Context, key string, members ...string) error
	SIsMember(ctx context.Context, key, member string) (bool, error)
	SMembers(ctx context.Context, key string) ([]string, error)
	Ping(ctx context.Context) error
}

// VectorFilter is the narrow filter DSL from spec.md §6: currently
// only per-field $ne negation is needed (DFRE excludes the viewer).
type VectorFilter struct {
	NotEqual map[string]string
}

type VectorStore interface {
	Upsert(ctx context.Context, id string, values []float32, metadata types.VectorMetadata) error
	Query(ctx context.Context, vector []float32, topK int, filter VectorFilter) ([]types.VectorMatch, error)
	Get(ctx context.Context, id string) ([]float32, error)
	Delete(ctx context.Context, id string) error
}

// EmbeddingResult reports usage/cost alongside the vector, per the
// Embedding interface in spec.md §6.
type EmbeddingResult struct {
	Vector           []float32
	PromptTokens     int
	CompletionTokens int
	CostUSD          float64
}

type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Scheduler mirrors spec.md §6: function registrations keyed by id,
// with an optional cron schedule and/or event trigger name.
type Scheduler interface {
	RegisterCron(id, cronExpr string, fn func(ctx context.Context) error) error
	RegisterEvent(id, eventName string, maxRetry int, fn func(ctx context.Context, payload []byte) error) error
	Emit(ctx context.Context, eventName string, payload []byte) error
}
