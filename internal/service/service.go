package service

import (
	"context"

	"behaviorbank-backend/internal/domain"
)

type AuthService interface {
	// Login authenticates by user name or numeric id plus PIN and
	// returns the user and a signed session token.
	Login(ctx context.Context, identifier, pin string) (*domain.User, string, error)
}

type UserService interface {
	CreateUser(ctx context.Context, actorID int32, name, pin string, role domain.UserRole) (*domain.User, error)
	GetUser(ctx context.Context, id int32) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

type LedgerService interface {
	GetBalance(ctx context.Context, userID int32) (int32, error)
	Award(ctx context.Context, actorID, userID int32, amount int32, description string, txType domain.TransactionType, metadata map[string]string) (*domain.LedgerMutation, error)
	Deduct(ctx context.Context, actorID, userID int32, amount int32, description string, metadata map[string]string) (*domain.LedgerMutation, error)
	// Adjust applies a signed correction and is the only path that may
	// drive a balance negative. Admin use only.
	Adjust(ctx context.Context, actorID, userID int32, delta int32, description string, metadata map[string]string) (*domain.LedgerMutation, error)
	GetHistory(ctx context.Context, userID int32, filter domain.TransactionFilter, page, limit int32) (*domain.TransactionPage, error)
}

type AccountService interface {
	CreateAccount(ctx context.Context, actorID, userID int32) (*domain.Account, error)
	GetAccount(ctx context.Context, id int32) (*domain.Account, error)
	GetAccountByUser(ctx context.Context, userID int32) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	CreateDeposit(ctx context.Context, actorID, accountID int32, amount float64, vestingMonths int32) (*domain.Deposit, error)
	ListDeposits(ctx context.Context, accountID int32) ([]domain.Deposit, error)
}

type WithdrawalService interface {
	CanWithdraw(ctx context.Context, accountID int32, requestedAmount float64) (*domain.WithdrawalDecision, error)
	GetAvailableBalance(ctx context.Context, accountID int32) (float64, error)
	RequestWithdrawal(ctx context.Context, requesterID, accountID int32, amount float64, reason string) (*domain.Withdrawal, *domain.WithdrawalDecision, error)
	ApproveWithdrawal(ctx context.Context, adminID, withdrawalID int32, notes string) (*domain.Withdrawal, error)
	RejectWithdrawal(ctx context.Context, adminID, withdrawalID int32, notes string) (*domain.Withdrawal, error)
	ListWithdrawals(ctx context.Context, status domain.WithdrawalStatus, requestedBy int32) ([]domain.Withdrawal, error)
}

type DashboardService interface {
	GetDashboard(ctx context.Context, userID int32) (*Dashboard, error)
}

type AuditService interface {
	// Record is best-effort: failures are logged, never returned.
	Record(ctx context.Context, actorID int32, action string, targetUserID *int32, details map[string]string)
	ListByActor(ctx context.Context, actorID int32, limit int32) ([]domain.AuditEntry, error)
}

type EmailService interface {
	SendWithdrawalDecisionNotice(ctx context.Context, childName string, amount float64, status domain.WithdrawalStatus, notes string) error
	SendPendingWithdrawalReminder(ctx context.Context, pendingCount int32) error
}
