package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"behaviorbank-backend/internal/domain"
	"behaviorbank-backend/internal/repository"
)

type ledgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

// AppendTransaction is a compare-and-append: the INSERT only fires when
// the user's latest transaction id still equals prevTxID, so two racing
// appends cannot both snapshot the same stale balance.
func (r *ledgerRepository) AppendTransaction(ctx context.Context, tx *domain.PointTransaction, prevTxID int64) error {
	metadata, err := json.Marshal(tx.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	query := `INSERT INTO points_ledger (user_id, type, amount, description, balance_after, created_by, metadata, created_at)
	          SELECT $1, $2, $3, $4, $5, $6, $7, now()
	          WHERE (SELECT COALESCE(MAX(id), 0) FROM points_ledger WHERE user_id = $1) = $8
	          RETURNING id, created_at`
	err = r.db.QueryRowContext(ctx, query,
		tx.UserID, tx.Type, tx.Amount, tx.Description, tx.BalanceAfter, tx.CreatedBy, metadata, prevTxID,
	).Scan(&tx.ID, &tx.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrLedgerConflict
	}
	return err
}

func (r *ledgerRepository) GetLatest(ctx context.Context, userID int32) (int64, int32, error) {
	var (
		txID    int64
		balance int32
	)
	query := `SELECT id, balance_after FROM points_ledger WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT 1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&txID, &balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, err
	}
	return txID, balance, nil
}

func (r *ledgerRepository) ListTransactions(ctx context.Context, userID int32, filter domain.TransactionFilter, page, limit int32) ([]domain.PointTransaction, int32, error) {
	where := `WHERE user_id = $1`
	args := []interface{}{userID}

	if filter.Type != "" {
		args = append(args, filter.Type)
		where += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.FromDate != nil {
		args = append(args, *filter.FromDate)
		where += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if filter.ToDate != nil {
		args = append(args, *filter.ToDate)
		where += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}

	var total int32
	countQuery := `SELECT count(*) FROM points_ledger ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT id, user_id, type, amount, description, balance_after, created_by, metadata, created_at
	          FROM points_ledger %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	txs, err := scanTransactions(rows)
	if err != nil {
		return nil, 0, err
	}
	return txs, total, nil
}

func (r *ledgerRepository) ListRecent(ctx context.Context, userID int32, limit int32) ([]domain.PointTransaction, error) {
	query := `SELECT id, user_id, type, amount, description, balance_after, created_by, metadata, created_at
	          FROM points_ledger WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func scanTransactions(rows *sql.Rows) ([]domain.PointTransaction, error) {
	var txs []domain.PointTransaction
	for rows.Next() {
		var (
			tx       domain.PointTransaction
			metadata []byte
		)
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Type, &tx.Amount, &tx.Description, &tx.BalanceAfter, &tx.CreatedBy, &metadata, &tx.CreatedAt); err != nil {
			return nil, err
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &tx.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshal metadata: %w", err)
			}
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}
