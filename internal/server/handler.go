package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"os"

	"github.com/Dwij1704/Visual-Review-Extractor/internal/logger"
	"github.com/Dwij1704/Visual-Review-Extractor/internal/renderer"
	"github.com/Dwij1704/Visual-Review-Extractor/internal/review"
)

// Runner executes one extraction. Satisfied by *pipeline.Pipeline.
type Runner interface {
	Run(ctx context.Context, targetURL string) (*review.Result, error)
}

// ReviewsResponse is the payload of GET /api/reviews.
type ReviewsResponse struct {
	ReviewsCount int             `json:"reviews_count"`
	Reviews      []review.Record `json:"reviews"`
	ErrorDetails string          `json:"errorDetails,omitempty"`
}

// Handler serves the extraction API.
type Handler struct {
	pipeline Runner
	logFile  string
}

// NewHandler creates a handler over the given pipeline. logFile is the
// flat log file served by the logs endpoint.
func NewHandler(pipeline Runner, logFile string) *Handler {
	return &Handler{pipeline: pipeline, logFile: logFile}
}

// HandleGetReviews runs the extraction pipeline for the page URL in the
// query string.
func (h *Handler) HandleGetReviews(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("page")
	if rawURL == "" {
		h.writeJSONError(w, "page query parameter is required", http.StatusBadRequest)
		return
	}

	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		h.writeJSONError(w, "page must be a valid absolute URL", http.StatusBadRequest)
		return
	}

	result, err := h.pipeline.Run(r.Context(), rawURL)
	if err != nil {
		if renderer.IsTimeout(err) {
			h.writeJSONError(w, err.Error(), http.StatusGatewayTimeout)
			return
		}
		var ne *renderer.NavigationError
		if errors.As(err, &ne) {
			logger.Error("extraction aborted", "url", rawURL, "error", err)
			h.writeJSONError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		logger.Error("extraction failed", "url", rawURL, "error", err)
		h.writeJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, ReviewsResponse{
		ReviewsCount: len(result.Reviews),
		Reviews:      result.Reviews,
		ErrorDetails: result.ErrorDetails,
	})
}

// HandleGetLogs dumps the flat log file as plain text.
func (h *Handler) HandleGetLogs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	data, err := os.ReadFile(h.logFile)
	if err != nil {
		if os.IsNotExist(err) {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.Error(w, "failed to read log file", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// HandleHealthCheck reports liveness.
func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to write JSON response", "error", err)
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
