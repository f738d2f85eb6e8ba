package http

import (
	"net/http"

	"behaviorbank-backend/internal/security"
	"behaviorbank-backend/internal/service"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services bundles everything the HTTP surface depends on.
type Services struct {
	Auth       service.AuthService
	User       service.UserService
	Ledger     service.LedgerService
	Account    service.AccountService
	Withdrawal service.WithdrawalService
	Dashboard  service.DashboardService
	Audit      service.AuditService
}

// NewRouter wires every route with its middleware chain.
func NewRouter(svcs Services, tokenManager security.TokenManager) *mux.Router {
	mw := NewMiddleware(tokenManager)

	authHandler := NewAuthHandler(svcs.Auth)
	userHandler := NewUserHandler(svcs.User)
	pointsHandler := NewPointsHandler(svcs.Ledger)
	accountHandler := NewAccountHandler(svcs.Account)
	withdrawalHandler := NewWithdrawalHandler(svcs.Withdrawal, svcs.Account)
	dashboardHandler := NewDashboardHandler(svcs.Dashboard)
	auditHandler := NewAuditHandler(svcs.Audit)

	r := mux.NewRouter()
	r.Use(mw.RequestID, mw.Metrics)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	r.HandleFunc("/api/auth/login", authHandler.Login).Methods(http.MethodPost)

	// Sessions are stateless tokens; logout exists so clients have a
	// uniform endpoint to call when discarding one.
	r.Handle("/api/auth/logout", mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
	}))).Methods(http.MethodPost)

	authed := r.NewRoute().Subrouter()
	authed.Use(mw.Authenticate)

	admin := r.NewRoute().Subrouter()
	admin.Use(mw.Authenticate, mw.RequireAdmin)

	admin.HandleFunc("/api/users", userHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/api/users", userHandler.List).Methods(http.MethodGet)
	authed.HandleFunc("/api/users/{id:[0-9]+}", userHandler.Get).Methods(http.MethodGet)

	admin.HandleFunc("/api/points", pointsHandler.Mutate).Methods(http.MethodPost)
	authed.HandleFunc("/api/points", pointsHandler.Balance).Methods(http.MethodGet)
	authed.HandleFunc("/api/points/history", pointsHandler.History).Methods(http.MethodGet)

	admin.HandleFunc("/api/accounts", accountHandler.Create).Methods(http.MethodPost)
	authed.HandleFunc("/api/accounts", accountHandler.List).Methods(http.MethodGet)
	authed.HandleFunc("/api/accounts/{id:[0-9]+}", accountHandler.Get).Methods(http.MethodGet)

	admin.HandleFunc("/api/deposits", accountHandler.CreateDeposit).Methods(http.MethodPost)
	authed.HandleFunc("/api/deposits", accountHandler.ListDeposits).Methods(http.MethodGet)

	authed.HandleFunc("/api/withdrawals", withdrawalHandler.Create).Methods(http.MethodPost)
	authed.HandleFunc("/api/withdrawals", withdrawalHandler.List).Methods(http.MethodGet)
	authed.HandleFunc("/api/withdrawals/available", withdrawalHandler.Available).Methods(http.MethodGet)
	admin.HandleFunc("/api/withdrawals/{id:[0-9]+}/approve", withdrawalHandler.Approve).Methods(http.MethodPost)
	admin.HandleFunc("/api/withdrawals/{id:[0-9]+}/reject", withdrawalHandler.Reject).Methods(http.MethodPost)

	authed.HandleFunc("/api/dashboard", dashboardHandler.Get).Methods(http.MethodGet)

	admin.HandleFunc("/api/audit", auditHandler.List).Methods(http.MethodGet)

	return r
}
