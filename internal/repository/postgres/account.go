package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"behaviorbank-backend/internal/domain"
	"behaviorbank-backend/internal/repository"
)

type accountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, a *domain.Account) error {
	query := `INSERT INTO accounts (user_id, deposit_amount, vesting_start, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, now(), now()) RETURNING id, created_on, updated_on`
	return r.db.QueryRowContext(ctx, query, a.UserID, a.DepositAmount, a.VestingStart, a.Status).
		Scan(&a.ID, &a.CreatedOn, &a.UpdatedOn)
}

func (r *accountRepository) GetByID(ctx context.Context, id int32) (*domain.Account, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *accountRepository) GetByUserID(ctx context.Context, userID int32) (*domain.Account, error) {
	return r.getOne(ctx, `WHERE user_id = $1`, userID)
}

func (r *accountRepository) getOne(ctx context.Context, where string, arg interface{}) (*domain.Account, error) {
	a := &domain.Account{}
	query := `SELECT id, user_id, deposit_amount, vesting_start, status, created_on, updated_on FROM accounts ` + where
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&a.ID, &a.UserID, &a.DepositAmount, &a.VestingStart, &a.Status, &a.CreatedOn, &a.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *accountRepository) List(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT id, user_id, deposit_amount, vesting_start, status, created_on, updated_on FROM accounts ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.UserID, &a.DepositAmount, &a.VestingStart, &a.Status, &a.CreatedOn, &a.UpdatedOn); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *accountRepository) AddToDepositAmount(ctx context.Context, accountID int32, delta float64) error {
	query := `UPDATE accounts SET deposit_amount=deposit_amount+$1, updated_on=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, delta, time.Now(), accountID)
	return err
}

func (r *accountRepository) UpdateStatus(ctx context.Context, accountID int32, status domain.AccountStatus) error {
	query := `UPDATE accounts SET status=$1, updated_on=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), accountID)
	return err
}
