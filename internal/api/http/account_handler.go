package http

import (
	"net/http"
	"strconv"

	"behaviorbank-backend/internal/domain"
	"behaviorbank-backend/internal/service"

	"github.com/gorilla/mux"
)

// AccountHandler covers cash accounts and their deposits.
type AccountHandler struct {
	accountSvc service.AccountService
}

func NewAccountHandler(accountSvc service.AccountService) *AccountHandler {
	return &AccountHandler{accountSvc: accountSvc}
}

type createAccountRequest struct {
	UserID int32 `json:"user_id"`
}

func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	var req createAccountRequest
	if !decodeBody(w, r, &req) {
		return
	}

	account, err := h.accountSvc.CreateAccount(r.Context(), claims.UserID, req.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid account id"})
		return
	}

	account, err := h.accountSvc.GetAccount(r.Context(), int32(id))
	if err != nil {
		writeError(w, err)
		return
	}
	if claims.Role != domain.UserRoleAdmin && account.UserID != claims.UserID {
		writeError(w, domain.ErrForbidden)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

// List returns all accounts for admins, or the caller's own account.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	if claims.Role == domain.UserRoleAdmin {
		accounts, err := h.accountSvc.ListAccounts(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, accounts)
		return
	}

	account, err := h.accountSvc.GetAccountByUser(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, []domain.Account{*account})
}

type createDepositRequest struct {
	AccountID     int32   `json:"account_id"`
	Amount        float64 `json:"amount"`
	VestingMonths int32   `json:"vesting_months"`
}

func (h *AccountHandler) CreateDeposit(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	var req createDepositRequest
	if !decodeBody(w, r, &req) {
		return
	}

	deposit, err := h.accountSvc.CreateDeposit(r.Context(), claims.UserID, req.AccountID, req.Amount, req.VestingMonths)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, deposit)
}

func (h *AccountHandler) ListDeposits(w http.ResponseWriter, r *http.Request) {
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

	deposits, err := h.accountSvc.ListDeposits(r.Context(), accountID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deposits)
}
