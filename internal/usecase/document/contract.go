package document

import (
	"context"

	"github.com/kailas-cloud/docsense/internal/domain"
	"github.com/kailas-cloud/docsense/internal/usecase/conversation"
)

// Repository defines the storage contract for documents.
type Repository interface {
	Create(ctx context.Context, doc *domain.Document) error
	Get(ctx context.Context, id string) (domain.Document, error)
	List(ctx context.Context) ([]domain.Document, error)
	UpdateDerived(ctx context.Context, id string, d domain.Derived) error
	Delete(ctx context.Context, id string) error
}

// Pipeline computes derived fields and answers questions.
type Pipeline interface {
	Derive(ctx context.Context, text string) (domain.Derived, error)
	Resummarize(ctx context.Context, text string) (domain.Derived, error)
	AnswerQuestion(ctx context.Context, content, question, documentID string) (conversation.Answer, error)
	ForgetConversation(ctx context.Context, documentID string) error
}
