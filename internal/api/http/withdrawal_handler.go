package http

import (
	"context"
	"net/http"
	"strconv"

	"behaviorbank-backend/internal/domain"
	"behaviorbank-backend/internal/service"

	"github.com/gorilla/mux"
)

// WithdrawalHandler covers withdrawal requests and admin decisions.
type WithdrawalHandler struct {
	withdrawalSvc service.WithdrawalService
	accountSvc    service.AccountService
}

func NewWithdrawalHandler(withdrawalSvc service.WithdrawalService, accountSvc service.AccountService) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawalSvc: withdrawalSvc, accountSvc: accountSvc}
}

type createWithdrawalRequest struct {
	AccountID int32   `json:"account_id"`
	Amount    float64 `json:"amount"`
	Reason    string  `json:"reason"`
}

type withdrawalDeniedResponse struct {
	Allowed         bool    `json:"allowed"`
	AvailableAmount float64 `json:"available_amount"`
	Reason          string  `json:"reason"`
}

func (h *WithdrawalHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	var req createWithdrawalRequest
	if !decodeBody(w, r, &req) {
		return
	}

	withdrawal, decision, err := h.withdrawalSvc.RequestWithdrawal(r.Context(), claims.UserID, req.AccountID, req.Amount, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	if withdrawal == nil {
		// Eligibility denial is a normal outcome, not an error.
		writeJSON(w, http.StatusBadRequest, withdrawalDeniedResponse{
			Allowed:         decision.Allowed,
			AvailableAmount: decision.AvailableAmount,
			Reason:          decision.Reason,
		})
		return
	}
	writeJSON(w, http.StatusCreated, withdrawal)
}

func (h *WithdrawalHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	q := r.URL.Query()

	status := domain.WithdrawalStatus(q.Get("status"))

	requestedBy := parseInt32(q.Get("userId"), 0)
	if claims.Role != domain.UserRoleAdmin {
		requestedBy = claims.UserID
	}

	withdrawals, err := h.withdrawalSvc.ListWithdrawals(r.Context(), status, requestedBy)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, withdrawals)
}

// Available reports the vested-plus-interest figure for an account.
func (h *WithdrawalHandler) Available(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	accountID := parseInt32(r.URL.Query().Get("accountId"), 0)
	if accountID == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "accountId is required"})
		return
	}

	if claims.Role != domain.UserRoleAdmin {
		account, err := h.accountSvc.GetAccount(r.Context(), accountID)
		if err != nil {
			writeError(w, err)
			return
		}
		if account.UserID != claims.UserID {
			writeError(w, domain.ErrForbidden)
			return
		}
	}

	available, err := h.withdrawalSvc.GetAvailableBalance(r.Context(), accountID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"available_amount": available})
}

type decisionRequest struct {
	Notes string `json:"notes"`
}

func (h *WithdrawalHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.withdrawalSvc.ApproveWithdrawal)
}

func (h *WithdrawalHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.withdrawalSvc.RejectWithdrawal)
}

type decisionFunc func(ctx context.Context, adminID, withdrawalID int32, notes string) (*domain.Withdrawal, error)

func (h *WithdrawalHandler) decide(w http.ResponseWriter, r *http.Request, fn decisionFunc) {
	claims, _ := ClaimsFromContext(r.Context())

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid withdrawal id"})
		return
	}

	var req decisionRequest
	if r.ContentLength > 0 && !decodeBody(w, r, &req) {
		return
	}

	withdrawal, err := fn(r.Context(), claims.UserID, int32(id), req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, withdrawal)
}
