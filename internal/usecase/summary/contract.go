package summary

import (
	"context"
	"time"

	"github.com/kailas-cloud/docsense/internal/domain"
)

// Completer generates text from a bounded message list.
type Completer interface {
	Complete(ctx context.Context, req domain.CompletionRequest) (domain.CompletionResult, error)
}

// Cache is the failure-absorbing cache surface the summarizer reads through.
type Cache interface {
	Lookup(ctx context.Context, key string) (string, bool)
	Store(ctx context.Context, key, value string, ttl time.Duration)
	Malformed(key string, err error)
}
