package pipeline

import (
	"context"

	"github.com/kailas-cloud/docsense/internal/domain"
	"github.com/kailas-cloud/docsense/internal/usecase/conversation"
)

// Summarizer produces one summary for text of any length.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Extractor produces topic and key phrase lists.
type Extractor interface {
	ExtractTopics(ctx context.Context, text string) ([]string, error)
	ExtractKeyPhrases(ctx context.Context, text string) ([]string, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Answerer answers questions about a document.
type Answerer interface {
	Answer(ctx context.Context, content, question, documentID string) (conversation.Answer, error)
	Forget(ctx context.Context, documentID string) error
}
