package chi

import (
	"time"

	"github.com/kailas-cloud/docsense/internal/domain"
	"github.com/kailas-cloud/docsense/internal/domain/search/result"
	"github.com/kailas-cloud/docsense/internal/usecase/conversation"
)

// ErrorCode is the machine-readable part of an error response.
type ErrorCode string

// Error codes returned by the API.
const (
	ErrorCodeBadRequest             ErrorCode = "bad_request"
	ErrorCodeValidationFailed       ErrorCode = "validation_failed"
	ErrorCodeUnauthorized           ErrorCode = "unauthorized"
	ErrorCodePayloadTooLarge        ErrorCode = "payload_too_large"
	ErrorCodeDocumentNotFound       ErrorCode = "document_not_found"
	ErrorCodeProviderError          ErrorCode = "provider_error"
	ErrorCodeAnswerGenerationFailed ErrorCode = "answer_generation_failed"
	ErrorCodeInternalError          ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// CreateDocumentRequest is the body of POST /documents. Content is the extracted text.
type CreateDocumentRequest struct {
	FileName string         `json:"file_name" validate:"required,max=255"`
	MimeType string         `json:"mime_type" validate:"omitempty,max=127"`
	FileSize int64          `json:"file_size" validate:"gte=0"`
	Content  string         `json:"content" validate:"required"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// QuestionRequest is the body of POST /documents/{id}/qa.
type QuestionRequest struct {
	Question string `json:"question" validate:"required,max=4000"`
}

// DocumentResponse describes a document. Derived fields are null until ingestion completes.
type DocumentResponse struct {
	ID           string         `json:"id"`
	FileName     string         `json:"file_name"`
	FileSize     int64          `json:"file_size"`
	MimeType     string         `json:"mime_type"`
	Content      *string        `json:"content,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	Summary      *string        `json:"summary"`
	Topics       []string       `json:"topics"`
	KeyPhrases   []string       `json:"key_phrases"`
	HasEmbedding bool           `json:"has_embedding"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// DocumentListResponse is the body of GET /documents.
type DocumentListResponse struct {
	Items []DocumentResponse `json:"items"`
}

// SummaryResponse is the body of GET /documents/{id}/summary.
type SummaryResponse struct {
	ID         string   `json:"id"`
	Summary    string   `json:"summary"`
	Topics     []string `json:"topics"`
	KeyPhrases []string `json:"key_phrases"`
}

// AnswerResponse is the body of POST /documents/{id}/qa.
type AnswerResponse struct {
	Answer string `json:"answer"`
	Mode   string `json:"mode"`
}

// SearchResultItem is one ranked document.
type SearchResultItem struct {
	DocumentID string    `json:"document_id"`
	FileName   string    `json:"file_name"`
	Summary    string    `json:"summary"`
	Topics     []string  `json:"topics"`
	KeyPhrases []string  `json:"key_phrases"`
	CreatedAt  time.Time `json:"created_at"`
	Distance   float64   `json:"distance"`
}

// SearchResponse is the body of GET /search.
type SearchResponse struct {
	Items []SearchResultItem `json:"items"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func documentToResponse(d *domain.Document, withContent bool) DocumentResponse {
	resp := DocumentResponse{
		ID:           d.ID,
		FileName:     d.FileName,
		FileSize:     d.FileSize,
		MimeType:     d.MimeType,
		Metadata:     d.Metadata,
		Topics:       nonNil(d.Topics),
		KeyPhrases:   nonNil(d.KeyPhrases),
		HasEmbedding: len(d.Embedding) > 0,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	if d.Summary != "" {
		s := d.Summary
		resp.Summary = &s
	}
	if withContent {
		c := d.Content
		resp.Content = &c
	}
	return resp
}

func summaryToResponse(d *domain.Document) SummaryResponse {
	return SummaryResponse{
		ID:         d.ID,
		Summary:    d.Summary,
		Topics:     nonNil(d.Topics),
		KeyPhrases: nonNil(d.KeyPhrases),
	}
}

func answerToResponse(a conversation.Answer) AnswerResponse {
	return AnswerResponse{Answer: a.Text, Mode: string(a.Mode)}
}

func searchResultToResponse(r *result.Result) SearchResultItem {
	return SearchResultItem{
		DocumentID: r.DocumentID(),
		FileName:   r.FileName(),
		Summary:    r.Summary(),
		Topics:     nonNil(r.Topics()),
		KeyPhrases: nonNil(r.KeyPhrases()),
		CreatedAt:  r.CreatedAt(),
		Distance:   r.Distance(),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
