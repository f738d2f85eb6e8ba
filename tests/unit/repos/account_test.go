package repos

import (
	"context"
	"testing"

	"behaviorbank-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestAccountRepository_AddToDepositAmount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewAccountRepository(db)
	ctx := context.Background()

	t.Run("IncrementsInPlace", func(t *testing.T) {
		// The update adds the delta inside the database instead of
		// writing back a value read earlier.
		mock.ExpectExec(`UPDATE accounts SET deposit_amount=deposit_amount\+\$1`).
			WithArgs(250.0, sqlmock.AnyArg(), int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.AddToDepositAmount(ctx, 1, 250)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
