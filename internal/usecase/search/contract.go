package search

import (
	"context"

	"github.com/kailas-cloud/docsense/internal/domain"
	"github.com/kailas-cloud/docsense/internal/domain/search/result"
)

// Repository orders stored documents by vector distance. Documents without an
// embedding are never returned.
type Repository interface {
	Nearest(ctx context.Context, vector []float32, limit int) ([]result.Result, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
