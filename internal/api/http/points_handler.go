package http

import (
	"net/http"
	"strconv"
	"time"

	"behaviorbank-backend/internal/domain"
	"behaviorbank-backend/internal/service"
)

// PointsHandler exposes the points ledger: balance, mutations, history.
type PointsHandler struct {
	ledgerSvc service.LedgerService
}

func NewPointsHandler(ledgerSvc service.LedgerService) *PointsHandler {
	return &PointsHandler{ledgerSvc: ledgerSvc}
}

type pointsMutationRequest struct {
	UserID      int32                  `json:"user_id"`
	Action      string                 `json:"action"`
	Amount      int32                  `json:"amount"`
	Description string                 `json:"description"`
	Type        domain.TransactionType `json:"type,omitempty"`
	Metadata    map[string]string      `json:"metadata,omitempty"`
}

// Mutate applies an award, deduction, or signed adjustment. Admin only;
// the router enforces that.
func (h *PointsHandler) Mutate(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	var req pointsMutationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var (
		mutation *domain.LedgerMutation
		err      error
	)
	switch req.Action {
	case "award":
		mutation, err = h.ledgerSvc.Award(r.Context(), claims.UserID, req.UserID, req.Amount, req.Description, req.Type, req.Metadata)
	case "deduct":
		mutation, err = h.ledgerSvc.Deduct(r.Context(), claims.UserID, req.UserID, req.Amount, req.Description, req.Metadata)
	case "adjust":
		mutation, err = h.ledgerSvc.Adjust(r.Context(), claims.UserID, req.UserID, req.Amount, req.Description, req.Metadata)
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "action must be award, deduct, or adjust"})
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mutation)
}

func (h *PointsHandler) Balance(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.resolveUserID(w, r)
	if !ok {
		return
	}

	balance, err := h.ledgerSvc.GetBalance(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int32{"user_id": userID, "balance": balance})
}

func (h *PointsHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.resolveUserID(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	var filter domain.TransactionFilter
	if t := q.Get("type"); t != "" {
		filter.Type = domain.TransactionType(t)
	}
	if from := q.Get("from"); from != "" {
		parsed, err := time.Parse(time.RFC3339, from)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid from date"})
			return
		}
		filter.FromDate = &parsed
	}
	if to := q.Get("to"); to != "" {
		parsed, err := time.Parse(time.RFC3339, to)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid to date"})
			return
		}
		filter.ToDate = &parsed
	}

	page := parseInt32(q.Get("page"), 0)
	limit := parseInt32(q.Get("limit"), 0)

	history, err := h.ledgerSvc.GetHistory(r.Context(), userID, filter, page, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

// resolveUserID picks the target user: admins may pass ?userId=, children
// are pinned to their own ledger.
func (h *PointsHandler) resolveUserID(w http.ResponseWriter, r *http.Request) (int32, bool) {
	claims, _ := ClaimsFromContext(r.Context())

	userID := claims.UserID
	if raw := r.URL.Query().Get("userId"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid userId"})
			return 0, false
		}
		if claims.Role != domain.UserRoleAdmin && int32(parsed) != claims.UserID {
			writeError(w, domain.ErrForbidden)
			return 0, false
		}
		userID = int32(parsed)
	}
	return userID, true
}

func parseInt32(raw string, fallback int32) int32 {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return int32(v)
}
