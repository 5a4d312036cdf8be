package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/emicklei/go-restful/v3"
	"github.com/povarna/generative-ai-agents/review-agent/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/review-agent/internal/models"
	"github.com/rs/zerolog"
)

const (
	Version = "1.0.0"

	MIME_TEXT    = "text/plain"
	MIME_FORM    = "application/x-www-form-urlencoded"
	MaxBodyBytes = 1 << 20
)

// Reviewer is the part of the review gateway the HTTP layer depends on.
type Reviewer interface {
	Review(ctx context.Context, req models.ReviewRequest) models.ReviewResult
}

type HealthResponse struct {
	Status  string `json:"status" description:"Service status"`
	Version string `json:"version" description:"API version"`
}

type Handler struct {
	reviewer Reviewer
	logger   *zerolog.Logger
}

func NewHandler(reviewer Reviewer, logger *zerolog.Logger) *Handler {
	return &Handler{
		reviewer: reviewer,
		logger:   logger,
	}
}

// Greeting handler GET /
func (h *Handler) Greeting(req *restful.Request, resp *restful.Response) {
	writeText(resp, http.StatusOK, "Hello World")
}

// Health handler GET /health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	healthResponse := HealthResponse{
		Status:  "ok",
		Version: Version,
	}

	_ = resp.WriteHeaderAndJson(http.StatusOK, healthResponse, restful.MIME_JSON)
}

// POST /ai/review
// Body: ReviewRequest as JSON; any other media type (or none) is the raw snippet
// Returns: review text, or ReviewResponse when the caller accepts JSON
func (h *Handler) Review(req *restful.Request, resp *restful.Response) {
	reviewRequest, err := readReviewRequest(resp, req.Request)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, middleware.ErrBodyTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		h.logger.Warn().
			Err(err).
			Str("requestID", middleware.RequestIDFrom(req)).
			Msg("Failed to parse request body")
		middleware.HandleError(resp, err, status)
		return
	}

	result := h.reviewer.Review(req.Request.Context(), reviewRequest)

	h.logger.Info().
		Str("requestID", middleware.RequestIDFrom(req)).
		Bool("ok", result.OK).
		Str("kind", string(result.Kind)).
		Msg("Review complete")

	status := StatusFor(result)
	if acceptsJSON(req) {
		_ = resp.WriteHeaderAndJson(status, result.Response(), restful.MIME_JSON)
		return
	}

	if result.OK {
		writeText(resp, status, result.Text)
		return
	}
	writeText(resp, status, result.Message)
}

// StatusFor maps a review outcome to the HTTP status returned to the caller.
func StatusFor(result models.ReviewResult) int {
	if result.OK {
		return http.StatusOK
	}

	switch result.Kind {
	case models.KindInvalidInput:
		return http.StatusBadRequest
	case models.KindUpstreamQuotaExceeded:
		return http.StatusTooManyRequests
	case models.KindUpstreamTimeout:
		return http.StatusGatewayTimeout
	case models.KindUpstreamTransportError:
		return http.StatusServiceUnavailable
	case models.KindEmptyUpstreamResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func readReviewRequest(w http.ResponseWriter, r *http.Request) (models.ReviewRequest, error) {
	var reviewRequest models.ReviewRequest

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return reviewRequest, fmt.Errorf("%w: limit is %d bytes", middleware.ErrBodyTooLarge, maxErr.Limit)
		}
		return reviewRequest, fmt.Errorf("%w: %v", middleware.ErrMalformedBody, err)
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != restful.MIME_JSON {
		return models.NewReviewRequest(string(body)), nil
	}

	// An empty JSON body carries no prompt; the gateway reports it as invalid input
	if len(bytes.TrimSpace(body)) == 0 {
		return reviewRequest, nil
	}

	if err := json.Unmarshal(body, &reviewRequest); err != nil {
		return reviewRequest, fmt.Errorf("%w: %v", middleware.ErrMalformedBody, err)
	}

	return reviewRequest, nil
}

func acceptsJSON(req *restful.Request) bool {
	return strings.Contains(req.HeaderParameter("Accept"), restful.MIME_JSON)
}

func writeText(resp *restful.Response, status int, text string) {
	resp.Header().Set("Content-Type", MIME_TEXT+"; charset=utf-8")
	resp.WriteHeader(status)
	_, _ = resp.Write([]byte(text))
}
