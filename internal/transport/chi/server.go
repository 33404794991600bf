// Package chi is the HTTP transport of the document service.
package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	logpkg "github.com/kailas-cloud/docsense/internal/logger"
	documentuc "github.com/kailas-cloud/docsense/internal/usecase/document"
	healthuc "github.com/kailas-cloud/docsense/internal/usecase/health"
)

// DefaultMaxBodyBytes caps request bodies when no limit is configured.
const DefaultMaxBodyBytes = 32 << 20

// Server serves the document API.
type Server struct {
	documents    DocumentService
	search       SearchService
	health       HealthService
	validate     *validator.Validate
	maxBodyBytes int64
}

// NewServer creates an HTTP API server.
func NewServer(documents DocumentService, search SearchService, health HealthService) *Server {
	return &Server{
		documents:    documents,
		search:       search,
		health:       health,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		maxBodyBytes: DefaultMaxBodyBytes,
	}
}

// WithMaxBodyBytes overrides the request body limit.
func (s *Server) WithMaxBodyBytes(n int64) *Server {
	if n > 0 {
		s.maxBodyBytes = n
	}
	return s
}

// Register mounts the API routes on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/documents", s.CreateDocument)
	r.Get("/documents", s.ListDocuments)
	r.Get("/documents/{id}", s.GetDocument)
	r.Delete("/documents/{id}", s.DeleteDocument)
	r.Get("/documents/{id}/summary", s.GetSummary)
	r.Post("/documents/{id}/qa", s.AskQuestion)
	r.Get("/search", s.SearchDocuments)
}

// CreateDocument handles POST /documents.
func (s *Server) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req CreateDocumentRequest
	if !s.decode(w, r, &req) {
		return
	}

	doc, err := s.documents.Create(r.Context(), documentuc.CreateInput{
		FileName: req.FileName,
		MimeType: req.MimeType,
		FileSize: req.FileSize,
		Content:  req.Content,
		Metadata: req.Metadata,
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.Header().Set("Location", "/documents/"+doc.ID)
	writeJSON(w, http.StatusCreated, documentToResponse(&doc, false))
}

// ListDocuments handles GET /documents.
func (s *Server) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.documents.List(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]DocumentResponse, len(docs))
	for i := range docs {
		items[i] = documentToResponse(&docs[i], false)
	}
	writeJSON(w, http.StatusOK, DocumentListResponse{Items: items})
}

// GetDocument handles GET /documents/{id}.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	r = withDocumentLogger(r)
	doc, err := s.documents.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, documentToResponse(&doc, true))
}

// DeleteDocument handles DELETE /documents/{id}.
func (s *Server) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	r = withDocumentLogger(r)
	if err := s.documents.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSummary handles GET /documents/{id}/summary?force=.
func (s *Server) GetSummary(w http.ResponseWriter, r *http.Request) {
	r = withDocumentLogger(r)

	var force *bool
	if err := runtime.BindQueryParameter("form", true, false, "force", r.URL.Query(), &force); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "invalid force parameter")
		return
	}

	doc, err := s.documents.Summary(r.Context(), chi.URLParam(r, "id"), force != nil && *force)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summaryToResponse(&doc))
}

// AskQuestion handles POST /documents/{id}/qa.
func (s *Server) AskQuestion(w http.ResponseWriter, r *http.Request) {
	r = withDocumentLogger(r)

	var req QuestionRequest
	if !s.decode(w, r, &req) {
		return
	}

	answer, err := s.documents.Ask(r.Context(), chi.URLParam(r, "id"), req.Question)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, answerToResponse(answer))
}

// SearchDocuments handles GET /search?query=&limit=.
func (s *Server) SearchDocuments(w http.ResponseWriter, r *http.Request) {
	var (
		query string
		limit *int
	)
	params := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, true, "query", params, &query); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "query parameter is required")
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", params, &limit); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "invalid limit parameter")
		return
	}

	n := 0
	if limit != nil {
		n = *limit
	}
	results, err := s.search.Search(r.Context(), query, n)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]SearchResultItem, len(results))
	for i := range results {
		items[i] = searchResultToResponse(&results[i])
	}
	writeJSON(w, http.StatusOK, SearchResponse{Items: items})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	status := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, HealthResponse{Status: string(report.Status), Checks: checks})
}

// decode reads and validates a JSON body. On failure it writes the error response
// and returns false.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, ErrorCodePayloadTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return false
		}
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, validationMessage(err))
		return false
	}
	return true
}

// validationMessage lists the failing fields as "field: tag".
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, len(verrs))
	for i, fe := range verrs {
		parts[i] = fmt.Sprintf("%s: %s", fe.Field(), fe.Tag())
	}
	return "invalid fields: " + strings.Join(parts, ", ")
}

func withDocumentLogger(r *http.Request) *http.Request {
	ctx := logpkg.With(r.Context(), zap.String("document_id", chi.URLParam(r, "id")))
	return r.WithContext(ctx)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}
