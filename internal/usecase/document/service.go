// Package document handles the document lifecycle around the AI pipeline: creation with
// background ingestion, reads, summary regeneration, questions and deletion.
package document

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docsense/internal/domain"
	"github.com/kailas-cloud/docsense/internal/metrics"
	"github.com/kailas-cloud/docsense/internal/usecase/conversation"
)

// DefaultIngestTimeout bounds one background ingestion run.
const DefaultIngestTimeout = 5 * time.Minute

// DefaultMimeType is assumed when the caller does not send one.
const DefaultMimeType = "application/pdf"

// CreateInput is the caller-provided part of a new document. Content is the
// already-extracted text.
type CreateInput struct {
	FileName string
	MimeType string
	FileSize int64
	Content  string
	Metadata map[string]any
}

// Service handles documents and their background processing.
type Service struct {
	repo          Repository
	pipe          Pipeline
	logger        *zap.Logger
	ingestTimeout time.Duration
	inflight      sync.WaitGroup
}

// New creates a document service.
func New(repo Repository, pipe Pipeline, logger *zap.Logger) *Service {
	return &Service{repo: repo, pipe: pipe, logger: logger, ingestTimeout: DefaultIngestTimeout}
}

// WithIngestTimeout overrides the per-document ingestion deadline.
func (s *Service) WithIngestTimeout(d time.Duration) *Service {
	if d > 0 {
		s.ingestTimeout = d
	}
	return s
}

// Create stores a document and starts its ingestion in the background.
// The returned document has no derived fields yet.
func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Document, error) {
	content := sanitize(in.Content)
	if strings.TrimSpace(content) == "" {
		return domain.Document{}, fmt.Errorf("%w: content is empty", domain.ErrInvalidRequest)
	}
	if strings.TrimSpace(in.FileName) == "" {
		return domain.Document{}, fmt.Errorf("%w: file name is required", domain.ErrInvalidRequest)
	}

	doc := domain.Document{
		ID:       uuid.NewString(),
		FileName: in.FileName,
		FileSize: in.FileSize,
		MimeType: in.MimeType,
		Content:  content,
		Metadata: in.Metadata,
	}
	if doc.MimeType == "" {
		doc.MimeType = DefaultMimeType
	}
	if doc.FileSize <= 0 {
		doc.FileSize = int64(len(in.Content))
	}

	if err := s.repo.Create(ctx, &doc); err != nil {
		return domain.Document{}, fmt.Errorf("create document: %w", err)
	}

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		s.ingest(doc.ID, doc.Content)
	}()

	return doc, nil
}

// ingest derives summary, topics, key phrases and embedding and writes them in one
// update. On failure nothing is written and the error is only logged.
func (s *Service) ingest(id, content string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.ingestTimeout)
	defer cancel()

	logger := s.logger.With(zap.String("document_id", id))
	start := time.Now()

	derived, err := s.pipe.Derive(ctx, content)
	if err != nil {
		metrics.IngestionsTotal.WithLabelValues("error").Inc()
		logger.Error("Document processing failed", zap.Error(err))
		return
	}
	if err := s.repo.UpdateDerived(ctx, id, derived); err != nil {
		metrics.IngestionsTotal.WithLabelValues("error").Inc()
		logger.Error("Failed to store derived fields", zap.Error(err))
		return
	}

	metrics.IngestionsTotal.WithLabelValues("success").Inc()
	logger.Info("Document processed",
		zap.Int("topics", len(derived.Topics)),
		zap.Int("key_phrases", len(derived.KeyPhrases)),
		zap.Duration("duration", time.Since(start)),
	)
}

// Wait blocks until in-flight ingestions finish or ctx is done.
func (s *Service) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for ingestion: %w", ctx.Err())
	}
}

// Get retrieves a document by ID.
func (s *Service) Get(ctx context.Context, id string) (domain.Document, error) {
	if err := validateID(id); err != nil {
		return domain.Document{}, err
	}
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Document{}, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// List returns all documents without their content.
func (s *Service) List(ctx context.Context) ([]domain.Document, error) {
	docs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// Summary returns the summary, topics and key phrases of a document. They are
// recomputed and stored when force is set or no summary exists yet.
func (s *Service) Summary(ctx context.Context, id string, force bool) (domain.Document, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return domain.Document{}, err
	}
	if !force && doc.Summary != "" {
		return doc, nil
	}

	derived, err := s.pipe.Resummarize(ctx, doc.Content)
	if err != nil {
		return domain.Document{}, fmt.Errorf("regenerate summary: %w", err)
	}
	if err := s.repo.UpdateDerived(ctx, id, derived); err != nil {
		return domain.Document{}, fmt.Errorf("store summary: %w", err)
	}

	doc.Summary = derived.Summary
	doc.Topics = derived.Topics
	doc.KeyPhrases = derived.KeyPhrases
	return doc, nil
}

// Ask answers a question about a stored document, keeping the conversation history.
func (s *Service) Ask(ctx context.Context, id, question string) (conversation.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return conversation.Answer{}, fmt.Errorf("%w: question is required", domain.ErrInvalidRequest)
	}

	doc, err := s.Get(ctx, id)
	if err != nil {
		return conversation.Answer{}, err
	}

	answer, err := s.pipe.AnswerQuestion(ctx, doc.Content, question, doc.ID)
	if err != nil {
		return conversation.Answer{}, fmt.Errorf("answer question: %w", err)
	}
	return answer, nil
}

// Delete removes a document and its conversation state. A failure to clear the
// conversation is logged; the history expires on its own.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if err := s.pipe.ForgetConversation(ctx, id); err != nil {
		s.logger.Warn("Failed to clear conversation", zap.String("document_id", id), zap.Error(err))
	}
	return nil
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: invalid document id %q", domain.ErrInvalidRequest, id)
	}
	return nil
}

// sanitize strips NUL bytes and Unicode non-characters left behind by text extraction.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case 0, '\uFFFD', '\uFFFE', '\uFFFF':
			return -1
		}
		return r
	}, s)
}
