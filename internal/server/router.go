package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the HTTP routing table with middleware applied.
func NewRouter(h *Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/reviews", h.HandleGetReviews)
	mux.HandleFunc("GET /api/logs", h.HandleGetLogs)
	mux.HandleFunc("GET /api/health", h.HandleHealthCheck)
	mux.Handle("GET /metrics", promhttp.Handler())

	var chained http.Handler = mux
	chained = Metrics(chained)
	chained = Logging(chained)
	return chained
}
