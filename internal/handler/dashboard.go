package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/taskflow/internal/auth"
	"github.com/sakif/taskflow/internal/service"
)

// DashboardHandler serves the read-only aggregate endpoints.
type DashboardHandler struct {
	dashboard *service.DashboardService
	logger    *slog.Logger
}

func NewDashboardHandler(dashboard *service.DashboardService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, logger: logger}
}

// HandleStats returns the user's aggregate task counts.
//
// HTTP: GET /api/dashboard/stats
func (h *DashboardHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	stats, err := h.dashboard.Stats(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err, "dashboard", "Failed to fetch dashboard stats")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// HandleOverdueTasks returns the user's overdue tasks, most overdue first.
//
// HTTP: GET /api/dashboard/overdue-tasks
func (h *DashboardHandler) HandleOverdueTasks(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	tasks, err := h.dashboard.OverdueTasks(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err, "dashboard", "Failed to fetch overdue tasks")
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}
