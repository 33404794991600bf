package document

import (
	"context"
	"fmt"
)

const schemaTemplate = `
CREATE EXTENSION IF NOT EXISTS vector;

CREATE TABLE IF NOT EXISTS documents (
	id          UUID PRIMARY KEY,
	file_name   TEXT NOT NULL,
	file_size   BIGINT NOT NULL,
	mime_type   TEXT NOT NULL,
	content     TEXT NOT NULL,
	metadata    JSONB,
	summary     TEXT,
	topics      TEXT[],
	key_phrases TEXT[],
	embedding   %s,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents (created_at DESC);
`

// schemaSQL renders the table DDL. dims <= 0 leaves the vector column unsized.
func schemaSQL(dims int) string {
	column := "vector"
	if dims > 0 {
		column = fmt.Sprintf("vector(%d)", dims)
	}
	return fmt.Sprintf(schemaTemplate, column)
}

// EnsureSchema creates the pgvector extension and the documents table if missing.
func (r *Repo) EnsureSchema(ctx context.Context, dims int) error {
	if _, err := r.db.Exec(ctx, schemaSQL(dims)); err != nil {
		return fmt.Errorf("ensure documents schema: %w", err)
	}
	return nil
}
