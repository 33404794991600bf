package document

import (
	"time"

	"github.com/pgvector/pgvector-go"

	"github.com/kailas-cloud/docsense/internal/domain"
	"github.com/kailas-cloud/docsense/internal/domain/search/result"
)

const documentColumns = `id, file_name, file_size, mime_type, content, metadata,
	summary, topics, key_phrases, embedding, created_at, updated_at`

// documentRow mirrors a documents row. Nullable columns scan into pointers.
type documentRow struct {
	ID         string
	FileName   string
	FileSize   int64
	MimeType   string
	Content    string
	Metadata   map[string]any
	Summary    *string
	Topics     []string
	KeyPhrases []string
	Embedding  *pgvector.Vector
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (r *documentRow) dest() []any {
	return []any{
		&r.ID, &r.FileName, &r.FileSize, &r.MimeType, &r.Content, &r.Metadata,
		&r.Summary, &r.Topics, &r.KeyPhrases, &r.Embedding, &r.CreatedAt, &r.UpdatedAt,
	}
}

func (r *documentRow) toDomain() domain.Document {
	doc := domain.Document{
		ID:         r.ID,
		FileName:   r.FileName,
		FileSize:   r.FileSize,
		MimeType:   r.MimeType,
		Content:    r.Content,
		Metadata:   r.Metadata,
		Topics:     r.Topics,
		KeyPhrases: r.KeyPhrases,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
	if r.Summary != nil {
		doc.Summary = *r.Summary
	}
	if r.Embedding != nil {
		doc.Embedding = r.Embedding.Slice()
	}
	return doc
}

const listColumns = `id, file_name, file_size, mime_type, summary, topics, created_at, updated_at`

// listRow is the content-free projection used by List.
type listRow struct {
	ID        string
	FileName  string
	FileSize  int64
	MimeType  string
	Summary   *string
	Topics    []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r *listRow) dest() []any {
	return []any{&r.ID, &r.FileName, &r.FileSize, &r.MimeType, &r.Summary, &r.Topics, &r.CreatedAt, &r.UpdatedAt}
}

func (r *listRow) toDomain() domain.Document {
	doc := domain.Document{
		ID:        r.ID,
		FileName:  r.FileName,
		FileSize:  r.FileSize,
		MimeType:  r.MimeType,
		Topics:    r.Topics,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.Summary != nil {
		doc.Summary = *r.Summary
	}
	return doc
}

// nearestRow is one row of a distance-ordered query.
type nearestRow struct {
	ID         string
	FileName   string
	Summary    *string
	Topics     []string
	KeyPhrases []string
	CreatedAt  time.Time
	Distance   float64
}

func (r *nearestRow) dest() []any {
	return []any{&r.ID, &r.FileName, &r.Summary, &r.Topics, &r.KeyPhrases, &r.CreatedAt, &r.Distance}
}

func (r *nearestRow) toResult() result.Result {
	var summary string
	if r.Summary != nil {
		summary = *r.Summary
	}
	return result.New(r.ID, r.FileName, summary, r.Topics, r.KeyPhrases, r.CreatedAt, r.Distance)
}

// vectorArg encodes an embedding parameter. An empty vector binds as NULL.
func vectorArg(v []float32) any {
	if len(v) == 0 {
		return nil
	}
	return pgvector.NewVector(v)
}
