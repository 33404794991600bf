// Package pipeline is the upward facade over the AI components. Callers at the
// ingestion or HTTP boundary depend on it instead of the individual services.
package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/docsense/internal/domain"
	"github.com/kailas-cloud/docsense/internal/usecase/conversation"
)

// Pipeline wires summarizer, extractor, embedder and QA engine together.
type Pipeline struct {
	summarizer Summarizer
	extractor  Extractor
	embedder   Embedder
	answerer   Answerer
}

// New creates the pipeline facade.
func New(summarizer Summarizer, extractor Extractor, embedder Embedder, answerer Answerer) *Pipeline {
	return &Pipeline{summarizer: summarizer, extractor: extractor, embedder: embedder, answerer: answerer}
}

// GenerateSummary returns a summary of text.
func (p *Pipeline) GenerateSummary(ctx context.Context, text string) (string, error) {
	return p.summarizer.Summarize(ctx, text)
}

// ExtractTopics returns the main topics of text.
func (p *Pipeline) ExtractTopics(ctx context.Context, text string) ([]string, error) {
	return p.extractor.ExtractTopics(ctx, text)
}

// ExtractKeyPhrases returns the key phrases of text.
func (p *Pipeline) ExtractKeyPhrases(ctx context.Context, text string) ([]string, error) {
	return p.extractor.ExtractKeyPhrases(ctx, text)
}

// GenerateEmbedding returns the embedding vector of text.
func (p *Pipeline) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	res, err := p.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("generate embedding: %w", err)
	}
	return res.Embedding, nil
}

// AnswerQuestion answers question about content. An empty documentID keeps no history.
func (p *Pipeline) AnswerQuestion(
	ctx context.Context, content, question, documentID string,
) (conversation.Answer, error) {
	return p.answerer.Answer(ctx, content, question, documentID)
}

// ForgetConversation drops all conversation state of documentID.
func (p *Pipeline) ForgetConversation(ctx context.Context, documentID string) error {
	return p.answerer.Forget(ctx, documentID)
}

// Derive computes every derived field of a document concurrently. Any failure
// fails the whole derivation so callers never persist a partial result.
func (p *Pipeline) Derive(ctx context.Context, text string) (domain.Derived, error) {
	var d domain.Derived
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		d.Summary, err = p.GenerateSummary(gctx, text)
		return wrap("summary", err)
	})
	g.Go(func() (err error) {
		d.Topics, err = p.ExtractTopics(gctx, text)
		return wrap("topics", err)
	})
	g.Go(func() (err error) {
		d.KeyPhrases, err = p.ExtractKeyPhrases(gctx, text)
		return wrap("key phrases", err)
	})
	g.Go(func() (err error) {
		d.Embedding, err = p.GenerateEmbedding(gctx, text)
		return err
	})

	if err := g.Wait(); err != nil {
		return domain.Derived{}, err
	}
	return d, nil
}

// Resummarize recomputes summary, topics and key phrases, keeping the embedding unset.
func (p *Pipeline) Resummarize(ctx context.Context, text string) (domain.Derived, error) {
	var d domain.Derived
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		d.Summary, err = p.GenerateSummary(gctx, text)
		return wrap("summary", err)
	})
	g.Go(func() (err error) {
		d.Topics, err = p.ExtractTopics(gctx, text)
		return wrap("topics", err)
	})
	g.Go(func() (err error) {
		d.KeyPhrases, err = p.ExtractKeyPhrases(gctx, text)
		return wrap("key phrases", err)
	})

	if err := g.Wait(); err != nil {
		return domain.Derived{}, err
	}
	return d, nil
}

func wrap(what string, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	return nil
}
