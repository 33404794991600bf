package conversation

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docsense/internal/domain"
	domconv "github.com/kailas-cloud/docsense/internal/domain/conversation"
)

var errProvider = errors.New("provider down")

type step struct {
	reply string
	err   error
}

// mockCompleter replays scripted steps; once exhausted it echoes the last user message.
type mockCompleter struct {
	steps    []step
	requests []domain.CompletionRequest
}

func (m *mockCompleter) Complete(_ context.Context, req domain.CompletionRequest) (domain.CompletionResult, error) {
	m.requests = append(m.requests, req)
	if len(m.steps) > 0 {
		s := m.steps[0]
		m.steps = m.steps[1:]
		return domain.CompletionResult{Content: s.reply}, s.err
	}
	return domain.CompletionResult{Content: "re: " + req.Messages[len(req.Messages)-1].Content}, nil
}

type mockHistory struct {
	data      map[string]domconv.History
	loads     int
	saves     int
	deleteErr error
}

func newMockHistory() *mockHistory {
	return &mockHistory{data: map[string]domconv.History{}}
}

func (m *mockHistory) Load(_ context.Context, id string) domconv.History {
	m.loads++
	return m.data[id].Clone()
}

func (m *mockHistory) Save(_ context.Context, id string, h domconv.History) {
	m.saves++
	m.data[id] = h.Clone()
}

func (m *mockHistory) Delete(_ context.Context, id string) error {
	delete(m.data, id)
	return m.deleteErr
}

// priorTurns builds n alternating user/assistant turns numbered from 1.
func priorTurns(n int) domconv.History {
	h := make(domconv.History, 0, n)
	for i := 1; i <= n; i++ {
		if i%2 == 1 {
			h = append(h, domconv.UserTurn(fmt.Sprintf("q%d", i)))
		} else {
			h = append(h, domconv.AssistantTurn(fmt.Sprintf("a%d", i)))
		}
	}
	return h
}

func newTestEngine(t *testing.T, llm *mockCompleter, h *mockHistory) (*Engine, *SessionStore) {
	t.Helper()
	sessions := NewSessionStore(16, 0)
	return New(llm, h, sessions, Config{}, zap.NewNop()), sessions
}
