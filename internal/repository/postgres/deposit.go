package postgres

import (
	"context"
	"database/sql"
	"time"

	"behaviorbank-backend/internal/domain"
	"behaviorbank-backend/internal/repository"
)

type depositRepository struct {
	db *sql.DB
}

func NewDepositRepository(db *sql.DB) repository.DepositRepository {
	return &depositRepository{db: db}
}

func (r *depositRepository) Create(ctx context.Context, d *domain.Deposit) error {
	query := `INSERT INTO deposits (account_id, amount, deposited_by, vesting_months, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, now(), now()) RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query, d.AccountID, d.Amount, d.DepositedBy, d.VestingMonths, d.Status).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

func (r *depositRepository) GetByID(ctx context.Context, id int32) (*domain.Deposit, error) {
	d := &domain.Deposit{}
	query := `SELECT id, account_id, amount, deposited_by, vesting_months, status, created_at, updated_at FROM deposits WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&d.ID, &d.AccountID, &d.Amount, &d.DepositedBy, &d.VestingMonths, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *depositRepository) ListByAccount(ctx context.Context, accountID int32) ([]domain.Deposit, error) {
	query := `SELECT id, account_id, amount, deposited_by, vesting_months, status, created_at, updated_at
	          FROM deposits WHERE account_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, accountID)
}

func (r *depositRepository) ListByAccountAndStatus(ctx context.Context, accountID int32, status domain.DepositStatus) ([]domain.Deposit, error) {
	query := `SELECT id, account_id, amount, deposited_by, vesting_months, status, created_at, updated_at
	          FROM deposits WHERE account_id = $1 AND status = $2 ORDER BY created_at DESC`
	return r.list(ctx, query, accountID, status)
}

func (r *depositRepository) ListByStatus(ctx context.Context, status domain.DepositStatus) ([]domain.Deposit, error) {
	query := `SELECT id, account_id, amount, deposited_by, vesting_months, status, created_at, updated_at
	          FROM deposits WHERE status = $1 ORDER BY created_at`
	return r.list(ctx, query, status)
}

func (r *depositRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.Deposit, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deposits []domain.Deposit
	for rows.Next() {
		var d domain.Deposit
		if err := rows.Scan(&d.ID, &d.AccountID, &d.Amount, &d.DepositedBy, &d.VestingMonths, &d.Status, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		deposits = append(deposits, d)
	}
	return deposits, rows.Err()
}

// UpdateStatus moves a deposit between lifecycle states only when it is
// still in the expected source state.
func (r *depositRepository) UpdateStatus(ctx context.Context, depositID int32, from, to domain.DepositStatus) error {
	query := `UPDATE deposits SET status=$1, updated_at=$2 WHERE id=$3 AND status=$4`
	_, err := r.db.ExecContext(ctx, query, to, time.Now(), depositID, from)
	return err
}
