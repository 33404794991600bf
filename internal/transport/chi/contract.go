package chi

import (
	"context"

	"github.com/kailas-cloud/docsense/internal/domain"
	"github.com/kailas-cloud/docsense/internal/domain/search/result"
	"github.com/kailas-cloud/docsense/internal/usecase/conversation"
	documentuc "github.com/kailas-cloud/docsense/internal/usecase/document"
	healthuc "github.com/kailas-cloud/docsense/internal/usecase/health"
)

// DocumentService is the document use case as seen by the HTTP layer.
type DocumentService interface {
	Create(ctx context.Context, in documentuc.CreateInput) (domain.Document, error)
	Get(ctx context.Context, id string) (domain.Document, error)
	List(ctx context.Context) ([]domain.Document, error)
	Summary(ctx context.Context, id string, force bool) (domain.Document, error)
	Ask(ctx context.Context, id, question string) (conversation.Answer, error)
	Delete(ctx context.Context, id string) error
}

// SearchService ranks documents by similarity to a free-text query.
type SearchService interface {
	Search(ctx context.Context, query string, limit int) ([]result.Result, error)
}

// HealthService aggregates component health.
type HealthService interface {
	Check(ctx context.Context) healthuc.Report
}
