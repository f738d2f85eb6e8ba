package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"behaviorbank-backend/internal/domain"
	"behaviorbank-backend/internal/repository"
)

type withdrawalRepository struct {
	db *sql.DB
}

func NewWithdrawalRepository(db *sql.DB) repository.WithdrawalRepository {
	return &withdrawalRepository{db: db}
}

func (r *withdrawalRepository) Create(ctx context.Context, w *domain.Withdrawal) error {
	query := `INSERT INTO withdrawals (account_id, requested_by, amount, reason, status, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, now(), now()) RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query, w.AccountID, w.RequestedBy, w.Amount, w.Reason, w.Status, w.Notes).
		Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
}

func (r *withdrawalRepository) GetByID(ctx context.Context, id int32) (*domain.Withdrawal, error) {
	w := &domain.Withdrawal{}
	query := `SELECT id, account_id, requested_by, amount, reason, status, processed_by, processed_at, COALESCE(notes, ''), created_at, updated_at
	          FROM withdrawals WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&w.ID, &w.AccountID, &w.RequestedBy, &w.Amount, &w.Reason, &w.Status, &w.ProcessedBy, &w.ProcessedAt, &w.Notes, &w.CreatedAt, &w.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrWithdrawalNotFound
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (r *withdrawalRepository) List(ctx context.Context, status domain.WithdrawalStatus, requestedBy int32) ([]domain.Withdrawal, error) {
	query := `SELECT id, account_id, requested_by, amount, reason, status, processed_by, processed_at, COALESCE(notes, ''), created_at, updated_at
	          FROM withdrawals WHERE 1=1`
	var args []interface{}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if requestedBy != 0 {
		args = append(args, requestedBy)
		query += fmt.Sprintf(" AND requested_by = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var withdrawals []domain.Withdrawal
	for rows.Next() {
		var w domain.Withdrawal
		if err := rows.Scan(&w.ID, &w.AccountID, &w.RequestedBy, &w.Amount, &w.Reason, &w.Status, &w.ProcessedBy, &w.ProcessedAt, &w.Notes, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, err
		}
		withdrawals = append(withdrawals, w)
	}
	return withdrawals, rows.Err()
}

// Process is a compare-and-swap on status: the UPDATE only matches while
// the row is still PENDING, so exactly one admin decision wins.
func (r *withdrawalRepository) Process(ctx context.Context, id int32, status domain.WithdrawalStatus, processedBy int32, notes string) error {
	query := `UPDATE withdrawals SET status=$1, processed_by=$2, processed_at=$3, notes=$4, updated_at=$3
	          WHERE id=$5 AND status='PENDING'`
	res, err := r.db.ExecContext(ctx, query, status, processedBy, time.Now(), notes, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrAlreadyProcessed
	}
	return nil
}

func (r *withdrawalRepository) CountPending(ctx context.Context) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM withdrawals WHERE status = 'PENDING'`).Scan(&count)
	return count, err
}
