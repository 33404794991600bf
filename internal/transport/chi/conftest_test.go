package chi

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docsense/internal/domain"
	"github.com/kailas-cloud/docsense/internal/domain/search/result"
	"github.com/kailas-cloud/docsense/internal/usecase/conversation"
	documentuc "github.com/kailas-cloud/docsense/internal/usecase/document"
	healthuc "github.com/kailas-cloud/docsense/internal/usecase/health"
)

const testID = "0b8f7f36-6c1e-4c5e-9a57-2f6f1c7d8e90"

var testTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type mockDocuments struct {
	createFn  func(ctx context.Context, in documentuc.CreateInput) (domain.Document, error)
	getFn     func(ctx context.Context, id string) (domain.Document, error)
	listFn    func(ctx context.Context) ([]domain.Document, error)
	summaryFn func(ctx context.Context, id string, force bool) (domain.Document, error)
	askFn     func(ctx context.Context, id, question string) (conversation.Answer, error)
	deleteFn  func(ctx context.Context, id string) error
}

func (m *mockDocuments) Create(ctx context.Context, in documentuc.CreateInput) (domain.Document, error) {
	return m.createFn(ctx, in)
}

func (m *mockDocuments) Get(ctx context.Context, id string) (domain.Document, error) {
	return m.getFn(ctx, id)
}

func (m *mockDocuments) List(ctx context.Context) ([]domain.Document, error) {
	return m.listFn(ctx)
}

func (m *mockDocuments) Summary(ctx context.Context, id string, force bool) (domain.Document, error) {
	return m.summaryFn(ctx, id, force)
}

func (m *mockDocuments) Ask(ctx context.Context, id, question string) (conversation.Answer, error) {
	return m.askFn(ctx, id, question)
}

func (m *mockDocuments) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

type mockSearch struct {
	searchFn func(ctx context.Context, query string, limit int) ([]result.Result, error)
}

func (m *mockSearch) Search(ctx context.Context, query string, limit int) ([]result.Result, error) {
	return m.searchFn(ctx, query, limit)
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(context.Context) healthuc.Report { return m.report }

func newTestRouter(docs *mockDocuments, search *mockSearch, health *mockHealth) http.Handler {
	if docs == nil {
		docs = &mockDocuments{}
	}
	if search == nil {
		search = &mockSearch{}
	}
	if health == nil {
		health = &mockHealth{report: healthuc.Report{Status: healthuc.Healthy}}
	}
	srv := NewServer(docs, search, health).WithMaxBodyBytes(1 << 10)
	return NewRouter(srv, RouterConfig{}, zap.NewNop())
}

func sampleDocument() domain.Document {
	return domain.Document{
		ID:         testID,
		FileName:   "report.pdf",
		FileSize:   1234,
		MimeType:   "application/pdf",
		Content:    "full text",
		Summary:    "a summary",
		Topics:     []string{"finance"},
		KeyPhrases: []string{"quarterly revenue"},
		Embedding:  []float32{0.1, 0.2},
		CreatedAt:  testTime,
		UpdatedAt:  testTime,
	}
}
