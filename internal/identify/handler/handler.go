// Package handler exposes the identify service over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"secid-gateway/internal/identify/models"
	"secid-gateway/internal/platform/middleware"
	"secid-gateway/pkg/platform/httputil"
	"secid-gateway/pkg/secid"
	"secid-gateway/pkg/validation"
)

//go:generate mockgen -source=handler.go -destination=mocks/identify-mocks.go -package=mocks Service

// Service defines the interface for identifier operations.
type Service interface {
	Detect(ctx context.Context, value string) ([]string, error)
	Validate(ctx context.Context, value, scheme string) (*models.Validation, error)
	ValidateBatch(ctx context.Context, values []string, scheme string) ([]models.BatchResult, error)
	Parse(ctx context.Context, value string, schemes []string, failOnAmbiguity bool) (*models.Validation, error)
	Extract(ctx context.Context, text string, schemes []string, maxResults int) ([]models.Match, error)
	Explain(ctx context.Context, value string, schemes []string) ([]models.Diagnosis, error)
	Schemes(ctx context.Context) []secid.Info
}

// Handler handles identifier endpoints.
type Handler struct {
	identify Service
	logger   *slog.Logger
}

// New creates a new identify Handler.
func New(identify Service, logger *slog.Logger) *Handler {
	return &Handler{
		identify: identify,
		logger:   logger,
	}
}

// Register registers the identifier routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/detect", h.handleDetect)
	r.Post("/validate", h.handleValidate)
	r.Post("/validate/batch", h.handleValidateBatch)
	r.Post("/parse", h.handleParse)
	r.Post("/extract", h.handleExtract)
	r.Post("/explain", h.handleExplain)
	r.Get("/schemes", h.handleSchemes)
}

func (h *Handler) handleDetect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := decode[DetectRequest](w, r, h.logger, requestID)
	if !ok {
		return
	}

	schemes, err := h.identify.Detect(ctx, req.Value)
	if err != nil {
		h.writeServiceError(w, r, "detect failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, DetectResponse{Value: req.Value, Schemes: schemes})
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := decode[ValidateRequest](w, r, h.logger, requestID)
	if !ok {
		return
	}

	result, err := h.identify.Validate(ctx, req.Value, req.Scheme)
	if err != nil {
		h.writeServiceError(w, r, "validate failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleValidateBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := decode[BatchValidateRequest](w, r, h.logger, requestID)
	if !ok {
		return
	}

	results, err := h.identify.ValidateBatch(ctx, req.Values, req.Scheme)
	if err != nil {
		h.writeServiceError(w, r, "batch validate failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, BatchValidateResponse{Scheme: req.Scheme, Results: results})
}

func (h *Handler) handleParse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := decode[ParseRequest](w, r, h.logger, requestID)
	if !ok {
		return
	}

	result, err := h.identify.Parse(ctx, req.Value, req.Schemes, req.FailOnAmbiguity)
	if err != nil {
		h.writeServiceError(w, r, "parse failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleExtract(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := decode[ExtractRequest](w, r, h.logger, requestID)
	if !ok {
		return
	}

	matches, err := h.identify.Extract(ctx, req.Text, req.Schemes, req.MaxResults)
	if err != nil {
		h.writeServiceError(w, r, "extract failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ExtractResponse{Matches: matches, Count: len(matches)})
}

func (h *Handler) handleExplain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := decode[ExplainRequest](w, r, h.logger, requestID)
	if !ok {
		return
	}

	diagnoses, err := h.identify.Explain(ctx, req.Value, req.Schemes)
	if err != nil {
		h.writeServiceError(w, r, "explain failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ExplainResponse{Value: req.Value, Diagnoses: diagnoses})
}

func (h *Handler) handleSchemes(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, SchemesResponse{Schemes: h.identify.Schemes(r.Context())})
}

// sanitizable lets decode trim request fields before validation.
type sanitizable interface {
	Sanitize()
}

// decode reads, sanitizes and validates a JSON request body. On failure the
// error response has already been written.
func decode[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, requestID string) (*T, bool) {
	req, ok := httputil.DecodeJSON[T](w, r, logger, requestID)
	if !ok {
		return nil, false
	}
	if s, isSanitizable := any(req).(sanitizable); isSanitizable {
		s.Sanitize()
	}
	if err := validation.Validate(req); err != nil {
		logger.WarnContext(r.Context(), "invalid request",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return nil, false
	}
	return req, true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.WarnContext(r.Context(), msg,
		"error", err,
		"request_id", middleware.GetRequestID(r.Context()),
	)
	httputil.WriteError(w, err)
}
