// Package summary produces a single summary for text of any length.
//
// Short text is summarized in one completion call. Text longer than three chunk budgets is
// split along paragraphs, each chunk is summarized concurrently and the ordered partial
// summaries are combined in one more call.
package summary

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/docsense/internal/domain"
	"github.com/kailas-cloud/docsense/internal/domain/text"
	"github.com/kailas-cloud/docsense/internal/metrics"
	"github.com/kailas-cloud/docsense/internal/repository/cache"
)

// Defaults used when Config leaves a field zero.
const (
	DefaultChunkChars    = 4000
	DefaultMessageTokens = 6000
	DefaultTTL           = 24 * time.Hour

	sectionMaxTokens = 500
	combineMaxTokens = 1000
)

// Config tunes chunking and budgets.
type Config struct {
	// ChunkChars is the per-chunk character budget. Map-reduce starts above 3x this size.
	ChunkChars int
	// MessageTokens bounds any single text submitted to the provider.
	MessageTokens int
	TTL           time.Duration
	Temperature   float32
}

func (c *Config) applyDefaults() {
	if c.ChunkChars <= 0 {
		c.ChunkChars = DefaultChunkChars
	}
	if c.MessageTokens <= 0 {
		c.MessageTokens = DefaultMessageTokens
	}
	if c.TTL <= 0 {
		c.TTL = DefaultTTL
	}
}

// Service is the map-reduce summarizer.
type Service struct {
	llm    Completer
	cache  Cache
	cfg    Config
	logger *zap.Logger
}

// New creates a summarizer.
func New(llm Completer, c Cache, cfg Config, logger *zap.Logger) *Service {
	cfg.applyDefaults()
	return &Service{llm: llm, cache: c, cfg: cfg, logger: logger}
}

// Summarize returns the summary of doc, served from cache when the same text prefix was
// summarized within the TTL. Provider errors are returned as is; nothing is retried.
func (s *Service) Summarize(ctx context.Context, doc string) (string, error) {
	key := cache.Key(cache.NamespaceSummary, doc)
	if cached, ok := s.cache.Lookup(ctx, key); ok {
		return cached, nil
	}

	var (
		summary string
		err     error
	)
	if text.Len(doc) > 3*s.cfg.ChunkChars {
		summary, err = s.mapReduce(ctx, doc)
	} else {
		summary, err = s.complete(ctx, sectionPrompt, text.Truncate(doc, s.cfg.MessageTokens), sectionMaxTokens)
	}
	if err != nil {
		return "", err
	}

	s.cache.Store(ctx, key, summary, s.cfg.TTL)
	return summary, nil
}

func (s *Service) mapReduce(ctx context.Context, doc string) (string, error) {
	chunks := text.Split(doc, s.cfg.ChunkChars)
	metrics.SummaryChunks.Observe(float64(len(chunks)))
	s.logger.Debug("Summarizing in chunks", zap.Int("chunks", len(chunks)), zap.Int("chars", text.Len(doc)))

	parts := make([]string, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		g.Go(func() error {
			out, err := s.complete(gctx, sectionPrompt, chunk, sectionMaxTokens)
			if err != nil {
				return fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
			}
			parts[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	return s.combine(ctx, parts)
}

// combine merges ordered section summaries. A single summary is returned unchanged.
func (s *Service) combine(ctx context.Context, parts []string) (string, error) {
	if len(parts) == 1 {
		return parts[0], nil
	}

	joined := text.Truncate(strings.Join(parts, sectionSeparator), s.cfg.MessageTokens)
	out, err := s.complete(ctx, combinePrompt, joined, combineMaxTokens)
	if err != nil {
		return "", fmt.Errorf("combine %d sections: %w", len(parts), err)
	}
	return out, nil
}

func (s *Service) complete(ctx context.Context, instruction, input string, maxTokens int) (string, error) {
	res, err := s.llm.Complete(ctx, domain.CompletionRequest{
		Messages:    []domain.Message{domain.SystemMessage(instruction), domain.UserMessage(input)},
		MaxTokens:   maxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}
	return res.Content, nil
}
