package postgres

import (
	"database/sql"

	"behaviorbank-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.AccountRepository
	repository.DepositRepository
	repository.LedgerRepository
	repository.WithdrawalRepository
	repository.AuditRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                   db,
		UserRepository:       NewUserRepository(db),
		AccountRepository:    NewAccountRepository(db),
		DepositRepository:    NewDepositRepository(db),
		LedgerRepository:     NewLedgerRepository(db),
		WithdrawalRepository: NewWithdrawalRepository(db),
		AuditRepository:      NewAuditRepository(db),
	}
}
