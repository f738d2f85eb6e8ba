package repos

import (
	"context"
	"testing"
	"time"

	"behaviorbank-backend/internal/domain"
	"behaviorbank-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestLedgerRepository_AppendTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewLedgerRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		tx := &domain.PointTransaction{
			UserID:       2,
			Type:         domain.TransactionTypeEarn,
			Amount:       50,
			Description:  "chores",
			BalanceAfter: 150,
			CreatedBy:    1,
		}

		mock.ExpectQuery("INSERT INTO points_ledger").
			WithArgs(tx.UserID, tx.Type, tx.Amount, tx.Description, tx.BalanceAfter, tx.CreatedBy, sqlmock.AnyArg(), int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(8), time.Now()))

		err := repo.AppendTransaction(ctx, tx, 7)
		assert.NoError(t, err)
		assert.Equal(t, int64(8), tx.ID)
	})

	t.Run("Conflict", func(t *testing.T) {
		tx := &domain.PointTransaction{
			UserID:       2,
			Type:         domain.TransactionTypeEarn,
			Amount:       50,
			BalanceAfter: 150,
		}

		// Stale prevTxID matches no row: the guarded INSERT returns nothing.
		mock.ExpectQuery("INSERT INTO points_ledger").
			WithArgs(tx.UserID, tx.Type, tx.Amount, tx.Description, tx.BalanceAfter, tx.CreatedBy, sqlmock.AnyArg(), int64(6)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}))

		err := repo.AppendTransaction(ctx, tx, 6)
		assert.ErrorIs(t, err, domain.ErrLedgerConflict)
	})
}

func TestLedgerRepository_GetLatest(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewLedgerRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, balance_after FROM points_ledger").
			WithArgs(int32(2)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "balance_after"}).AddRow(int64(9), int32(120)))

		txID, balance, err := repo.GetLatest(ctx, 2)
		assert.NoError(t, err)
		assert.Equal(t, int64(9), txID)
		assert.Equal(t, int32(120), balance)
	})

	t.Run("EmptyLedger", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, balance_after FROM points_ledger").
			WithArgs(int32(3)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "balance_after"}))

		txID, balance, err := repo.GetLatest(ctx, 3)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), txID)
		assert.Equal(t, int32(0), balance)
	})
}

func TestLedgerRepository_ListTransactions(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewLedgerRepository(db)
	ctx := context.Background()

	t.Run("AllFiltersNumberPlaceholdersInOrder", func(t *testing.T) {
		from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		filter := domain.TransactionFilter{
			Type:     domain.TransactionTypeEarn,
			FromDate: &from,
			ToDate:   &to,
		}

		mock.ExpectQuery(`SELECT count\(\*\) FROM points_ledger WHERE user_id = \$1 AND type = \$2 AND created_at >= \$3 AND created_at <= \$4`).
			WithArgs(int32(2), domain.TransactionTypeEarn, from, to).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int32(41)))

		rows := sqlmock.NewRows([]string{"id", "user_id", "type", "amount", "description", "balance_after", "created_by", "metadata", "created_at"}).
			AddRow(int64(21), int32(2), "EARN", int32(50), "chores", int32(150), int32(1), nil, time.Now())

		// Pagination placeholders follow the filter args, so the second
		// page of 20 binds limit as $5 and offset as $6.
		mock.ExpectQuery(`FROM points_ledger WHERE user_id = \$1 AND type = \$2 AND created_at >= \$3 AND created_at <= \$4 ORDER BY created_at DESC, id DESC LIMIT \$5 OFFSET \$6`).
			WithArgs(int32(2), domain.TransactionTypeEarn, from, to, int32(20), int32(20)).
			WillReturnRows(rows)

		txs, total, err := repo.ListTransactions(ctx, 2, filter, 2, 20)
		assert.NoError(t, err)
		assert.Equal(t, int32(41), total)
		assert.Len(t, txs, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NoFilters", func(t *testing.T) {
		mock.ExpectQuery(`SELECT count\(\*\) FROM points_ledger WHERE user_id = \$1`).
			WithArgs(int32(2)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int32(0)))

		mock.ExpectQuery(`FROM points_ledger WHERE user_id = \$1 ORDER BY created_at DESC, id DESC LIMIT \$2 OFFSET \$3`).
			WithArgs(int32(2), int32(20), int32(0)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "type", "amount", "description", "balance_after", "created_by", "metadata", "created_at"}))

		txs, total, err := repo.ListTransactions(ctx, 2, domain.TransactionFilter{}, 1, 20)
		assert.NoError(t, err)
		assert.Equal(t, int32(0), total)
		assert.Empty(t, txs)
	})
}

func TestLedgerRepository_ListRecent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewLedgerRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "user_id", "type", "amount", "description", "balance_after", "created_by", "metadata", "created_at"}).
			AddRow(int64(9), int32(2), "EARN", int32(50), "chores", int32(150), int32(1), []byte(`{"task":"dishes"}`), time.Now()).
			AddRow(int64(8), int32(2), "SPEND", int32(-20), "screen time", int32(100), int32(1), nil, time.Now())

		mock.ExpectQuery("SELECT id, user_id, type, amount, description, balance_after, created_by, metadata, created_at").
			WithArgs(int32(2), int32(10)).
			WillReturnRows(rows)

		txs, err := repo.ListRecent(ctx, 2, 10)
		assert.NoError(t, err)
		assert.Len(t, txs, 2)
		assert.Equal(t, "dishes", txs[0].Metadata["task"])
		assert.Nil(t, txs[1].Metadata)
	})
}
