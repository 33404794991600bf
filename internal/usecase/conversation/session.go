package conversation

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	domconv "github.com/kailas-cloud/docsense/internal/domain/conversation"
)

// Session store defaults.
const (
	DefaultSessionCapacity = 1024
	DefaultSessionTTL      = 2 * time.Hour
)

// session is the in-process conversation of one document.
// mu protects history only; it is never held across a provider call.
type session struct {
	mu      sync.Mutex
	history domconv.History
}

func (s *session) snapshot() domconv.History {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Clone()
}

// replace installs h as the session history and returns a copy of it.
func (s *session) replace(h domconv.History) domconv.History {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = h.Clone()
	return h.Clone()
}

// SessionStore holds in-process conversations, evicted by capacity or by TTL since the
// last write. It is created at startup and injected into the Engine.
type SessionStore struct {
	mu       sync.Mutex
	sessions *expirable.LRU[string, *session]
}

// NewSessionStore creates a store holding at most capacity sessions for ttl each.
func NewSessionStore(capacity int, ttl time.Duration) *SessionStore {
	if capacity <= 0 {
		capacity = DefaultSessionCapacity
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{sessions: expirable.NewLRU[string, *session](capacity, nil, ttl)}
}

// acquire returns the session of documentID, creating it from hydrate on first use.
// hydrate runs without the store lock; if two callers race, the first to install wins.
func (s *SessionStore) acquire(documentID string, hydrate func() domconv.History) *session {
	if sess, ok := s.sessions.Get(documentID); ok {
		return sess
	}

	fresh := &session{history: hydrate()}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions.Get(documentID); ok {
		return sess
	}
	s.sessions.Add(documentID, fresh)
	return fresh
}

// touch refreshes the TTL of a session after a write.
func (s *SessionStore) touch(documentID string, sess *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions.Add(documentID, sess)
}

// Remove drops the session of documentID.
func (s *SessionStore) Remove(documentID string) {
	s.sessions.Remove(documentID)
}

// Len reports the number of live sessions.
func (s *SessionStore) Len() int {
	return s.sessions.Len()
}
