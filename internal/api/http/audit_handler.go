package http

import (
	"net/http"

	"behaviorbank-backend/internal/service"
)

// AuditHandler lets admins review the action trail per actor.
type AuditHandler struct {
	auditSvc service.AuditService
}

func NewAuditHandler(auditSvc service.AuditService) *AuditHandler {
	return &AuditHandler{auditSvc: auditSvc}
}

func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	actorID := parseInt32(q.Get("actorId"), 0)
	if actorID == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "actorId is required"})
		return
	}
	limit := parseInt32(q.Get("limit"), 0)

	entries, err := h.auditSvc.ListByActor(r.Context(), actorID, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
