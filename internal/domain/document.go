package domain

import "time"

// Document is an uploaded document together with its AI-derived fields.
// Derived fields stay empty until ingestion completes.
type Document struct {
	ID         string
	FileName   string
	FileSize   int64
	MimeType   string
	Content    string
	Metadata   map[string]any
	Summary    string
	Topics     []string
	KeyPhrases []string
	Embedding  []float32 // nil until computed
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Derived holds the fields the pipeline writes back after processing a document.
// Embedding is nil when only the textual fields are refreshed.
type Derived struct {
	Summary    string
	Topics     []string
	KeyPhrases []string
	Embedding  []float32
}
