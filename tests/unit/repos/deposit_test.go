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

func TestDepositRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewDepositRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		d := &domain.Deposit{
			AccountID:     1,
			Amount:        250,
			DepositedBy:   1,
			VestingMonths: 24,
			Status:        domain.DepositStatusActive,
		}

		mock.ExpectQuery("INSERT INTO deposits").
			WithArgs(d.AccountID, d.Amount, d.DepositedBy, d.VestingMonths, d.Status).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int32(3), time.Now(), time.Now()))

		err := repo.Create(ctx, d)
		assert.NoError(t, err)
		assert.Equal(t, int32(3), d.ID)
	})
}

func TestDepositRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewDepositRepository(db)
	ctx := context.Background()

	t.Run("GuardedBySourceState", func(t *testing.T) {
		mock.ExpectExec("UPDATE deposits SET status").
			WithArgs(domain.DepositStatusCompleted, sqlmock.AnyArg(), int32(3), domain.DepositStatusActive).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(ctx, 3, domain.DepositStatusActive, domain.DepositStatusCompleted)
		assert.NoError(t, err)
	})
}

func TestDepositRepository_ListByAccountAndStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewDepositRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "account_id", "amount", "deposited_by", "vesting_months", "status", "created_at", "updated_at"}).
			AddRow(int32(1), int32(1), 250.0, int32(1), int32(24), "ACTIVE", time.Now(), time.Now())

		mock.ExpectQuery("SELECT id, account_id, amount, deposited_by, vesting_months, status").
			WithArgs(int32(1), domain.DepositStatusActive).
			WillReturnRows(rows)

		deposits, err := repo.ListByAccountAndStatus(ctx, 1, domain.DepositStatusActive)
		assert.NoError(t, err)
		assert.Len(t, deposits, 1)
		assert.Equal(t, 250.0, deposits[0].Amount)
	})
}
