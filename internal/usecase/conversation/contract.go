package conversation

import (
	"context"

	"github.com/kailas-cloud/docsense/internal/domain"
	domconv "github.com/kailas-cloud/docsense/internal/domain/conversation"
)

// Completer generates text from a bounded message list.
type Completer interface {
	Complete(ctx context.Context, req domain.CompletionRequest) (domain.CompletionResult, error)
}

// HistoryStore is the durable, TTL-bound conversation history keyed by document.
type HistoryStore interface {
	Load(ctx context.Context, documentID string) domconv.History
	Save(ctx context.Context, documentID string, h domconv.History)
	Delete(ctx context.Context, documentID string) error
}
