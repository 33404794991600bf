// Package cache is the gateway between the pipeline and the shared key-value store.
//
// Get/Set/Delete report store failures as domain.ErrCacheUnavailable. The Lookup and
// Store helpers absorb them: a failed or malformed read behaves exactly like a miss and
// a failed write is only logged, so a cache outage never blocks the pipeline.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docsense/internal/db"
	"github.com/kailas-cloud/docsense/internal/domain"
)

// store is the consumer interface for the cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// Gateway maps cache keys to previously computed results with a time-to-live.
type Gateway struct {
	store  store
	prefix string
	ops    *prometheus.CounterVec
	logger *zap.Logger
}

// New creates a cache gateway. prefix namespaces every key in the shared store.
// ops is a counter vec with labels "namespace" and "result", may be nil.
func New(s store, prefix string, ops *prometheus.CounterVec, logger *zap.Logger) *Gateway {
	return &Gateway{store: s, prefix: prefix, ops: ops, logger: logger}
}

// Get returns the cached value for key. A missing entry yields domain.ErrCacheMiss,
// a store failure an error wrapping domain.ErrCacheUnavailable.
func (g *Gateway) Get(ctx context.Context, key string) (string, error) {
	data, err := g.store.Get(ctx, g.prefix+key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return "", domain.ErrCacheMiss
		}
		return "", fmt.Errorf("%w: get %s: %w", domain.ErrCacheUnavailable, key, err)
	}
	return string(data), nil
}

// Set stores value under key for ttl.
func (g *Gateway) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := g.store.SetWithTTL(ctx, g.prefix+key, []byte(value), ttl); err != nil {
		return fmt.Errorf("%w: set %s: %w", domain.ErrCacheUnavailable, key, err)
	}
	return nil
}

// Delete removes key.
func (g *Gateway) Delete(ctx context.Context, key string) error {
	if err := g.store.Del(ctx, g.prefix+key); err != nil {
		return fmt.Errorf("%w: delete %s: %w", domain.ErrCacheUnavailable, key, err)
	}
	return nil
}

// Lookup returns the cached value and true on a hit. Misses and failures return false.
func (g *Gateway) Lookup(ctx context.Context, key string) (string, bool) {
	value, err := g.Get(ctx, key)
	switch {
	case err == nil:
		g.count(key, "hit")
		return value, true
	case errors.Is(err, domain.ErrCacheMiss):
		g.count(key, "miss")
	default:
		g.count(key, "error")
		g.logger.Warn("Cache lookup failed, recomputing", zap.String("key", key), zap.Error(err))
	}
	return "", false
}

// Store writes value under key, logging instead of failing.
func (g *Gateway) Store(ctx context.Context, key, value string, ttl time.Duration) {
	if err := g.Set(ctx, key, value, ttl); err != nil {
		g.count(key, "error")
		g.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
		return
	}
	g.count(key, "stored")
}

// Cache is the failure-absorbing read-through surface of Gateway.
type Cache interface {
	Lookup(ctx context.Context, key string) (string, bool)
	Store(ctx context.Context, key, value string, ttl time.Duration)
	Malformed(key string, err error)
}

// LookupJSON reads a JSON-encoded value. An undecodable payload counts as a miss.
func LookupJSON[T any](ctx context.Context, c Cache, key string) (T, bool) {
	var v T
	raw, ok := c.Lookup(ctx, key)
	if !ok {
		return v, false
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		c.Malformed(key, fmt.Errorf("%w: %w", domain.ErrMalformedCachedPayload, err))
		var zero T
		return zero, false
	}
	return v, true
}

// StoreJSON writes v as JSON. Values that cannot be encoded are reported and skipped.
func StoreJSON[T any](ctx context.Context, c Cache, key string, v T, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		c.Malformed(key, err)
		return
	}
	c.Store(ctx, key, string(data), ttl)
}

// Malformed records a payload the caller could not decode.
func (g *Gateway) Malformed(key string, err error) {
	g.count(key, "malformed")
	g.logger.Warn("Discarding cached payload", zap.String("key", key), zap.Error(err))
}

func (g *Gateway) count(key, result string) {
	if g.ops != nil {
		g.ops.WithLabelValues(namespaceOf(key), result).Inc()
	}
}
