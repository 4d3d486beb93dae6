package handlers

import (
	"context"
	"net/http"
	"time"

	"segment-aligner/internal/contextutil"
	"segment-aligner/internal/service"
)

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	alignService       service.AlignService
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(alignService service.AlignService) *HealthHandler {
	return &HealthHandler{
		alignService:       alignService,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Overall health status: "healthy" or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// Number of transcripts in the catalog
	Transcripts int `json:"transcripts"`

	// List of issues (only present if status is unhealthy)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP handles GET /api/health.
// Returns 200 OK if healthy, 503 Service Unavailable otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	// Create context with timeout for health checks
	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    make(map[string]string),
	}
	httpStatus := http.StatusOK

	summaries, err := h.alignService.List(checkCtx)
	if err != nil {
		logger.WarnContext(ctx, "catalog health check failed", "error", err)
		response.Checks["catalog"] = "error"
		response.Issues = append(response.Issues, "catalog_unavailable")
		response.Status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	} else {
		response.Checks["catalog"] = "ok"
		response.Transcripts = len(summaries)
	}

	writeJSON(w, ctx, httpStatus, response)
}
