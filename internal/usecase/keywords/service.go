package keywords

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docsense/internal/domain"
	"github.com/kailas-cloud/docsense/internal/domain/text"
	"github.com/kailas-cloud/docsense/internal/repository/cache"
)

// Defaults used when Config leaves a field zero.
const (
	DefaultMessageTokens = 6000
	DefaultTTL           = 24 * time.Hour
)

// Config tunes the extractor budgets.
type Config struct {
	MessageTokens int
	TTL           time.Duration
	Temperature   float32
}

// extraction describes one list-producing completion.
type extraction struct {
	namespace string
	prompt    string
	maxTokens int
}

var (
	topics = extraction{
		namespace: cache.NamespaceTopics,
		prompt: "You analyze documents. List the 5 main topics of the following document. " +
			"Reply with the topics separated by commas and nothing else.",
		maxTokens: 100,
	}
	keyPhrases = extraction{
		namespace: cache.NamespaceKeyPhrases,
		prompt: "You analyze documents. List the 10 most important key phrases or terms of the following document. " +
			"Reply with the phrases separated by commas and nothing else.",
		maxTokens: 200,
	}
)

// Service extracts topics and key phrases from document text.
type Service struct {
	llm    Completer
	cache  Cache
	cfg    Config
	logger *zap.Logger
}

// New creates an extractor.
func New(llm Completer, c Cache, cfg Config, logger *zap.Logger) *Service {
	if cfg.MessageTokens <= 0 {
		cfg.MessageTokens = DefaultMessageTokens
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	return &Service{llm: llm, cache: c, cfg: cfg, logger: logger}
}

// ExtractTopics returns the main topics of doc. The model is asked for five;
// any count it returns is accepted.
func (s *Service) ExtractTopics(ctx context.Context, doc string) ([]string, error) {
	return s.extract(ctx, topics, doc)
}

// ExtractKeyPhrases returns the key phrases of doc. The model is asked for ten;
// any count it returns is accepted.
func (s *Service) ExtractKeyPhrases(ctx context.Context, doc string) ([]string, error) {
	return s.extract(ctx, keyPhrases, doc)
}

func (s *Service) extract(ctx context.Context, e extraction, doc string) ([]string, error) {
	key := cache.Key(e.namespace, doc)
	if cached, ok := cache.LookupJSON[[]string](ctx, s.cache, key); ok {
		return cached, nil
	}

	res, err := s.llm.Complete(ctx, domain.CompletionRequest{
		Messages: []domain.Message{
			domain.SystemMessage(e.prompt),
			domain.UserMessage(text.Truncate(doc, s.cfg.MessageTokens)),
		},
		MaxTokens:   e.maxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", e.namespace, err)
	}

	items := ParseList(res.Content)
	cache.StoreJSON(ctx, s.cache, key, items, s.cfg.TTL)
	return items, nil
}

// ParseList splits a comma-separated model reply, trimming whitespace and dropping
// empty entries. It never returns nil.
func ParseList(reply string) []string {
	items := make([]string, 0, strings.Count(reply, ",")+1)
	for _, part := range strings.Split(reply, ",") {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	return items
}
