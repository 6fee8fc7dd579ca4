package domain

import (
	"context"
	"time"
)

// Source is the uniform contract every product adapter implements.
// Search may return an empty slice; GetDetails returns ErrProductNotFound
// when it has nothing for the id. Callers treat any error as "no result".
type Source interface {
	Name() string
	Search(ctx context.Context, query string) ([]Product, error)
	GetDetails(ctx context.Context, id string) (*Product, error)
}

// CacheRepository stores encoded values with a TTL
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// SearchClient defines the interface for the outbound web search backend
type SearchClient interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
}

// CompletionClient defines the interface for the text generation backend
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
