package repository

import (
	"context"

	"behaviorbank-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByName(ctx context.Context, name string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id int32) (*domain.Account, error)
	GetByUserID(ctx context.Context, userID int32) (*domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	// AddToDepositAmount increments the denormalized principal sum in
	// place so concurrent deposits cannot lose an update.
	AddToDepositAmount(ctx context.Context, accountID int32, delta float64) error
	UpdateStatus(ctx context.Context, accountID int32, status domain.AccountStatus) error
}

type DepositRepository interface {
	Create(ctx context.Context, deposit *domain.Deposit) error
	GetByID(ctx context.Context, id int32) (*domain.Deposit, error)
	ListByAccount(ctx context.Context, accountID int32) ([]domain.Deposit, error)
	ListByAccountAndStatus(ctx context.Context, accountID int32, status domain.DepositStatus) ([]domain.Deposit, error)
	ListByStatus(ctx context.Context, status domain.DepositStatus) ([]domain.Deposit, error)
	UpdateStatus(ctx context.Context, depositID int32, from, to domain.DepositStatus) error
}

type LedgerRepository interface {
	// AppendTransaction inserts tx only if prevTxID is still the user's
	// most recent transaction id (0 for an empty ledger). Returns
	// domain.ErrLedgerConflict when another append won the race.
	AppendTransaction(ctx context.Context, tx *domain.PointTransaction, prevTxID int64) error

	// GetLatest returns the most recent transaction's id and
	// balanceAfter, or (0, 0, nil) when the user has no transactions.
	GetLatest(ctx context.Context, userID int32) (txID int64, balanceAfter int32, err error)

	ListTransactions(ctx context.Context, userID int32, filter domain.TransactionFilter, page, limit int32) ([]domain.PointTransaction, int32, error)
	ListRecent(ctx context.Context, userID int32, limit int32) ([]domain.PointTransaction, error)
}

type WithdrawalRepository interface {
	Create(ctx context.Context, w *domain.Withdrawal) error
	GetByID(ctx context.Context, id int32) (*domain.Withdrawal, error)
	List(ctx context.Context, status domain.WithdrawalStatus, requestedBy int32) ([]domain.Withdrawal, error)

	// Process transitions the withdrawal out of PENDING exactly once.
	// Returns domain.ErrAlreadyProcessed when the status was no longer
	// PENDING.
	Process(ctx context.Context, id int32, status domain.WithdrawalStatus, processedBy int32, notes string) error

	CountPending(ctx context.Context) (int32, error)
}

type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditEntry) error
	ListByActor(ctx context.Context, actorID int32, limit int32) ([]domain.AuditEntry, error)
}
