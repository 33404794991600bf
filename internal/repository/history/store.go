package history

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docsense/internal/domain/conversation"
	"github.com/kailas-cloud/docsense/internal/repository/cache"
)

// DefaultTTL is how long a conversation survives without new turns.
const DefaultTTL = 2 * time.Hour

// gateway is the consumer interface for the cache (ISP).
type gateway interface {
	Lookup(ctx context.Context, key string) (string, bool)
	Store(ctx context.Context, key, value string, ttl time.Duration)
	Delete(ctx context.Context, key string) error
	Malformed(key string, err error)
}

// Store persists conversation histories in the cache under "history:<documentID>"
// using the canonical conversation encoding.
type Store struct {
	cache  gateway
	ttl    time.Duration
	logger *zap.Logger
}

// New creates a durable history store. A non-positive ttl selects DefaultTTL.
func New(g gateway, ttl time.Duration, logger *zap.Logger) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{cache: g, ttl: ttl, logger: logger}
}

// Load returns the persisted history of a document. A missing, unreadable or
// malformed entry yields an empty history.
func (s *Store) Load(ctx context.Context, documentID string) conversation.History {
	key := cache.HistoryKey(documentID)
	raw, ok := s.cache.Lookup(ctx, key)
	if !ok {
		return nil
	}
	h, err := conversation.Decode(raw)
	if err != nil {
		s.cache.Malformed(key, err)
		return nil
	}
	return h
}

// Save overwrites the persisted history of a document and refreshes its TTL.
func (s *Store) Save(ctx context.Context, documentID string, h conversation.History) {
	raw, err := conversation.Encode(h)
	if err != nil {
		s.logger.Warn("Failed to encode history", zap.String("document_id", documentID), zap.Error(err))
		return
	}
	s.cache.Store(ctx, cache.HistoryKey(documentID), raw, s.ttl)
}

// Delete drops the persisted history of a document.
func (s *Store) Delete(ctx context.Context, documentID string) error {
	return s.cache.Delete(ctx, cache.HistoryKey(documentID))
}
