package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/davidbz/ember/internal/domain"
	"github.com/davidbz/ember/internal/observability"
)

// Handler serves the usage-stats endpoints.
type Handler struct {
	stats *domain.UsageStats
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(stats *domain.UsageStats) *Handler {
	return &Handler{
		stats: stats,
	}
}

// HandleStats returns the current performance summary.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	summary := h.stats.Summarize()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(summary); err != nil {
		observability.FromContext(r.Context()).Error("failed to encode summary",
			observability.Error(err))
	}
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
	}); err != nil {
		// Already written status, can't change it, just log.
		return
	}
}
