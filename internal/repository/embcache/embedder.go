package embcache

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/kailas-cloud/docsense/internal/domain"
	"github.com/kailas-cloud/docsense/internal/repository/cache"
)

// DefaultTTL keeps computed embeddings for a week.
const DefaultTTL = 7 * 24 * time.Hour

// gateway is the consumer interface for the cache (ISP).
type gateway interface {
	Lookup(ctx context.Context, key string) (string, bool)
	Store(ctx context.Context, key, value string, ttl time.Duration)
	Malformed(key string, err error)
}

// CachedEmbedder caches embeddings under the "embedding" namespace.
type CachedEmbedder struct {
	inner domain.Embedder
	cache gateway
	ttl   time.Duration
}

// New creates a caching decorator. A non-positive ttl selects DefaultTTL.
func New(inner domain.Embedder, g gateway, ttl time.Duration) *CachedEmbedder {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CachedEmbedder{inner: inner, cache: g, ttl: ttl}
}

// Embed returns a cached embedding or calls the inner embedder.
// Cache hit: TotalTokens = 0 (no real tokens consumed).
// Cache miss: full EmbeddingResult from inner.
func (c *CachedEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	key := cache.Key(cache.NamespaceEmbedding, text)

	if raw, ok := c.cache.Lookup(ctx, key); ok {
		vec, err := bytesToVector([]byte(raw))
		if err == nil {
			return domain.EmbeddingResult{Embedding: vec}, nil
		}
		c.cache.Malformed(key, err)
	}

	result, err := c.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed text: %w", err)
	}

	c.cache.Store(ctx, key, string(vectorToCacheBytes(result.Embedding)), c.ttl)
	return result, nil
}

func vectorToCacheBytes(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func bytesToVector(data []byte) ([]float32, error) {
	if len(data) == 0 || len(data)%4 != 0 {
		return nil, fmt.Errorf("%w: embedding of %d bytes", domain.ErrMalformedCachedPayload, len(data))
	}
	vec := make([]float32, len(data)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return vec, nil
}
