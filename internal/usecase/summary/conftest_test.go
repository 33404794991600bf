package summary

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/kailas-cloud/docsense/internal/domain"
)

type mockCompleter struct {
	mu       sync.Mutex
	requests []domain.CompletionRequest
	failOn   string
}

func (m *mockCompleter) Complete(_ context.Context, req domain.CompletionRequest) (domain.CompletionResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)

	input := req.Messages[len(req.Messages)-1].Content
	if m.failOn != "" && req.Messages[0].Content == m.failOn {
		return domain.CompletionResult{}, errors.New("provider down")
	}
	if req.Messages[0].Content == combinePrompt {
		return domain.CompletionResult{Content: "combined"}, nil
	}
	return domain.CompletionResult{Content: "summary of " + input[:1]}, nil
}

func (m *mockCompleter) count(prompt string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.requests {
		if r.Messages[0].Content == prompt {
			n++
		}
	}
	return n
}

type mockCache struct {
	data     map[string]string
	ttls     map[string]time.Duration
	disabled bool
}

func newMockCache() *mockCache {
	return &mockCache{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *mockCache) Lookup(_ context.Context, key string) (string, bool) {
	if m.disabled {
		return "", false
	}
	v, ok := m.data[key]
	return v, ok
}

func (m *mockCache) Store(_ context.Context, key, value string, ttl time.Duration) {
	if m.disabled {
		return
	}
	m.data[key] = value
	m.ttls[key] = ttl
}

func (m *mockCache) Malformed(string, error) {}

type failingCompleter struct{}

func (failingCompleter) Complete(context.Context, domain.CompletionRequest) (domain.CompletionResult, error) {
	return domain.CompletionResult{}, errSentinel
}
