package search

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/kailas-cloud/docsense/internal/domain"
	"github.com/kailas-cloud/docsense/internal/domain/search/result"
)

// Limit bounds.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Service ranks documents by similarity to a query.
type Service struct {
	repo  Repository
	embed Embedder
}

// New creates a search service.
func New(repo Repository, embed Embedder) *Service {
	return &Service{repo: repo, embed: embed}
}

// Search embeds query and ranks stored documents against it.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]result.Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", domain.ErrInvalidRequest)
	}

	emb, err := s.embed.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	return s.Rank(ctx, emb.Embedding, limit)
}

// Rank returns at most limit documents ordered by non-decreasing distance to vector.
// A zero limit selects DefaultLimit.
func (s *Service) Rank(ctx context.Context, vector []float32, limit int) ([]result.Result, error) {
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 0 || limit > MaxLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", domain.ErrInvalidRequest, MaxLimit)
	}
	if len(vector) == 0 {
		return nil, fmt.Errorf("%w: empty query vector", domain.ErrInvalidRequest)
	}

	results, err := s.repo.Nearest(ctx, vector, limit)
	if err != nil {
		return nil, fmt.Errorf("nearest documents: %w", err)
	}

	// Equal distances keep the store order.
	slices.SortStableFunc(results, func(a, b result.Result) int {
		da, db := a.Distance(), b.Distance()
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		}
		return 0
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
