package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kailas-cloud/docsense/internal/domain"
	"github.com/kailas-cloud/docsense/internal/domain/search/result"
)

// querier is the consumer interface for Postgres (ISP).
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repo stores documents and their derived fields in Postgres with pgvector.
type Repo struct {
	db querier
}

// New creates a document repository.
func New(q querier) *Repo {
	return &Repo{db: q}
}

// Create inserts a document and fills its timestamps.
func (r *Repo) Create(ctx context.Context, doc *domain.Document) error {
	const q = `INSERT INTO documents (id, file_name, file_size, mime_type, content, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	row := r.db.QueryRow(ctx, q, doc.ID, doc.FileName, doc.FileSize, doc.MimeType, doc.Content, doc.Metadata)
	if err := row.Scan(&doc.CreatedAt, &doc.UpdatedAt); err != nil {
		return fmt.Errorf("insert document %s: %w", doc.ID, err)
	}
	return nil
}

// Get returns a document by ID.
func (r *Repo) Get(ctx context.Context, id string) (domain.Document, error) {
	q := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`

	var row documentRow
	if err := r.db.QueryRow(ctx, q, id).Scan(row.dest()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Document{}, fmt.Errorf("document %s: %w", id, domain.ErrDocumentNotFound)
		}
		return domain.Document{}, fmt.Errorf("get document %s: %w", id, err)
	}
	return row.toDomain(), nil
}

// List returns all documents, newest first, without content or embedding.
func (r *Repo) List(ctx context.Context) ([]domain.Document, error) {
	q := `SELECT ` + listColumns + ` FROM documents ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs := make([]domain.Document, 0)
	for rows.Next() {
		var row listRow
		if err := rows.Scan(row.dest()...); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, row.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// UpdateDerived writes the AI-derived fields in one statement. A nil embedding
// keeps the stored one.
func (r *Repo) UpdateDerived(ctx context.Context, id string, d domain.Derived) error {
	const q = `UPDATE documents
		SET summary = $2, topics = $3, key_phrases = $4,
			embedding = COALESCE($5, embedding), updated_at = now()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, q, id, d.Summary, d.Topics, d.KeyPhrases, vectorArg(d.Embedding))
	if err != nil {
		return fmt.Errorf("update document %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", id, domain.ErrDocumentNotFound)
	}
	return nil
}

// Delete removes a document.
func (r *Repo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", id, domain.ErrDocumentNotFound)
	}
	return nil
}

// Nearest returns up to limit embedded documents ordered by L2 distance to vector.
func (r *Repo) Nearest(ctx context.Context, vector []float32, limit int) ([]result.Result, error) {
	const q = `SELECT id, file_name, summary, topics, key_phrases, created_at,
			embedding <-> $1 AS distance
		FROM documents
		WHERE embedding IS NOT NULL
		ORDER BY distance
		LIMIT $2`

	rows, err := r.db.Query(ctx, q, vectorArg(vector), limit)
	if err != nil {
		return nil, fmt.Errorf("nearest documents: %w", err)
	}
	defer rows.Close()

	results := make([]result.Result, 0, limit)
	for rows.Next() {
		var row nearestRow
		if err := rows.Scan(row.dest()...); err != nil {
			return nil, fmt.Errorf("scan nearest: %w", err)
		}
		results = append(results, row.toResult())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("nearest documents: %w", err)
	}
	return results, nil
}
