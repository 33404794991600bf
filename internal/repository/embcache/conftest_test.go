package embcache

import (
	"context"
	"time"

	"github.com/kailas-cloud/docsense/internal/domain"
)

type mockEmbedder struct {
	result domain.EmbeddingResult
	err    error
	calls  int
	got    string
}

func (m *mockEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	m.calls++
	m.got = text
	return m.result, m.err
}

// mockGateway implements the consumer interface for tests.
type mockGateway struct {
	data      map[string]string
	ttls      map[string]time.Duration
	malformed []string
}

func newMockGateway() *mockGateway {
	return &mockGateway{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *mockGateway) Lookup(_ context.Context, key string) (string, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *mockGateway) Store(_ context.Context, key, value string, ttl time.Duration) {
	m.data[key] = value
	m.ttls[key] = ttl
}

func (m *mockGateway) Malformed(key string, _ error) {
	m.malformed = append(m.malformed, key)
}
