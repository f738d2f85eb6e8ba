package http

import (
	"net/http"

	"behaviorbank-backend/internal/domain"
	"behaviorbank-backend/internal/service"
)

// DashboardHandler serves the child-facing overview.
type DashboardHandler struct {
	dashboardSvc service.DashboardService
}

func NewDashboardHandler(dashboardSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	userID := claims.UserID
	if raw := r.URL.Query().Get("userId"); raw != "" {
		parsed := parseInt32(raw, 0)
		if parsed == 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid userId"})
			return
		}
		if claims.Role != domain.UserRoleAdmin && parsed != claims.UserID {
			writeError(w, domain.ErrForbidden)
			return
		}
		userID = parsed
	}

	dashboard, err := h.dashboardSvc.GetDashboard(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}
