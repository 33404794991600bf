package domain

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/docsense/internal/domain/text"
)

// Embedder is the shared text vectorization contract between layers.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// HealthChecker verifies provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// EmbeddingResult carries the embedding vector and token usage through the decorator chain.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// TruncatingEmbedder is a domain decorator that bounds input text to a token budget
// before it reaches the provider.
type TruncatingEmbedder struct {
	inner     Embedder
	maxTokens int
}

// NewTruncatingEmbedder creates a decorator that truncates text to maxTokens.
func NewTruncatingEmbedder(inner Embedder, maxTokens int) *TruncatingEmbedder {
	return &TruncatingEmbedder{inner: inner, maxTokens: maxTokens}
}

// Embed truncates text and delegates to inner embedder.
func (e *TruncatingEmbedder) Embed(ctx context.Context, s string) (EmbeddingResult, error) {
	result, err := e.inner.Embed(ctx, text.Truncate(s, e.maxTokens))
	if err != nil {
		return EmbeddingResult{}, fmt.Errorf("truncating embed: %w", err)
	}
	return result, nil
}
