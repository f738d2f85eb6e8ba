package unit

import (
	"context"
	"testing"
	"time"

	"behaviorbank-backend/internal/domain"
	"behaviorbank-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newWithdrawalFixture() (*MockWithdrawalRepo, *MockAccountRepo, *MockDepositRepo, *MockUserRepo, *MockEmailSvc, service.WithdrawalService) {
	withdrawalRepo := new(MockWithdrawalRepo)
	accountRepo := new(MockAccountRepo)
	depositRepo := new(MockDepositRepo)
	userRepo := new(MockUserRepo)
	emailSvc := new(MockEmailSvc)
	svc := service.NewWithdrawalService(withdrawalRepo, accountRepo, depositRepo, userRepo, noopAudit{}, emailSvc)
	return withdrawalRepo, accountRepo, depositRepo, userRepo, emailSvc, svc
}

// monthsAgo returns a start time m average months in the past.
func monthsAgo(m float64) time.Time {
	return time.Now().Add(-time.Duration(m * 30.44 * 24 * float64(time.Hour)))
}

func TestWithdrawalService_CanWithdraw(t *testing.T) {
	ctx := context.Background()

	t.Run("AccountNotFound", func(t *testing.T) {
		_, accountRepo, _, _, _, svc := newWithdrawalFixture()
		accountRepo.On("GetByID", ctx, int32(1)).Return(nil, domain.ErrAccountNotFound).Once()

		decision, err := svc.CanWithdraw(ctx, 1, 100)
		assert.NoError(t, err)
		assert.False(t, decision.Allowed)
		assert.Equal(t, "Account not found", decision.Reason)
	})

	t.Run("LockedAccount", func(t *testing.T) {
		_, accountRepo, _, _, _, svc := newWithdrawalFixture()
		accountRepo.On("GetByID", ctx, int32(1)).
			Return(&domain.Account{ID: 1, UserID: 2, Status: domain.AccountStatusLocked}, nil).Once()

		decision, err := svc.CanWithdraw(ctx, 1, 100)
		assert.NoError(t, err)
		assert.False(t, decision.Allowed)
	})

	t.Run("HalfVestedDeposit", func(t *testing.T) {
		_, accountRepo, depositRepo, _, _, svc := newWithdrawalFixture()
		accountRepo.On("GetByID", ctx, int32(1)).
			Return(&domain.Account{ID: 1, UserID: 2, Status: domain.AccountStatusActive}, nil).Once()
		depositRepo.On("ListByAccount", ctx, int32(1)).
			Return([]domain.Deposit{{
				ID:            1,
				Amount:        1200,
				VestingMonths: 12,
				Status:        domain.DepositStatusActive,
				CreatedAt:     monthsAgo(6),
			}}, nil).Once()

		// 600 vested, plus 600 * 5% * half a year = 15 interest.
		decision, err := svc.CanWithdraw(ctx, 1, 100)
		assert.NoError(t, err)
		assert.True(t, decision.Allowed)
		assert.InDelta(t, 615, decision.AvailableAmount, 1.0)
	})

	t.Run("OverAskDenied", func(t *testing.T) {
		_, accountRepo, depositRepo, _, _, svc := newWithdrawalFixture()
		accountRepo.On("GetByID", ctx, int32(1)).
			Return(&domain.Account{ID: 1, UserID: 2, Status: domain.AccountStatusActive}, nil).Once()
		depositRepo.On("ListByAccount", ctx, int32(1)).
			Return([]domain.Deposit{{
				ID:            1,
				Amount:        1200,
				VestingMonths: 12,
				Status:        domain.DepositStatusActive,
				CreatedAt:     monthsAgo(6),
			}}, nil).Once()

		decision, err := svc.CanWithdraw(ctx, 1, 1000)
		assert.NoError(t, err)
		assert.False(t, decision.Allowed)
		assert.Contains(t, decision.Reason, "is available (vested + interest)")
		assert.InDelta(t, 615, decision.AvailableAmount, 1.0)
	})

	t.Run("FullyVestedCapsInterest", func(t *testing.T) {
		_, accountRepo, depositRepo, _, _, svc := newWithdrawalFixture()
		accountRepo.On("GetByID", ctx, int32(1)).
			Return(&domain.Account{ID: 1, UserID: 2, Status: domain.AccountStatusActive}, nil).Once()
		depositRepo.On("ListByAccount", ctx, int32(1)).
			Return([]domain.Deposit{{
				ID:            1,
				Amount:        1000,
				VestingMonths: 12,
				Status:        domain.DepositStatusActive,
				CreatedAt:     monthsAgo(24),
			}}, nil).Once()

		// Full principal plus one year of interest, not two.
		decision, err := svc.CanWithdraw(ctx, 1, 0)
		assert.NoError(t, err)
		assert.InDelta(t, 1050, decision.AvailableAmount, 1.0)
	})

	t.Run("CompletedDepositStaysWithdrawable", func(t *testing.T) {
		_, accountRepo, depositRepo, _, _, svc := newWithdrawalFixture()
		accountRepo.On("GetByID", ctx, int32(1)).
			Return(&domain.Account{ID: 1, UserID: 2, Status: domain.AccountStatusActive}, nil).Once()
		depositRepo.On("ListByAccount", ctx, int32(1)).
			Return([]domain.Deposit{{
				ID:            1,
				Amount:        1000,
				VestingMonths: 12,
				Status:        domain.DepositStatusCompleted,
				CreatedAt:     monthsAgo(24),
			}}, nil).Once()

		// Completing a matured deposit must not remove it from the
		// withdrawable total.
		decision, err := svc.CanWithdraw(ctx, 1, 1000)
		assert.NoError(t, err)
		assert.True(t, decision.Allowed)
		assert.InDelta(t, 1050, decision.AvailableAmount, 1.0)
	})

	t.Run("PendingDepositNotCounted", func(t *testing.T) {
		_, accountRepo, depositRepo, _, _, svc := newWithdrawalFixture()
		accountRepo.On("GetByID", ctx, int32(1)).
			Return(&domain.Account{ID: 1, UserID: 2, Status: domain.AccountStatusActive}, nil).Once()
		depositRepo.On("ListByAccount", ctx, int32(1)).
			Return([]domain.Deposit{
				{ID: 1, Amount: 1000, VestingMonths: 12, Status: domain.DepositStatusCompleted, CreatedAt: monthsAgo(24)},
				{ID: 2, Amount: 500, VestingMonths: 12, Status: domain.DepositStatusPending, CreatedAt: monthsAgo(24)},
			}, nil).Once()

		decision, err := svc.CanWithdraw(ctx, 1, 0)
		assert.NoError(t, err)
		assert.InDelta(t, 1050, decision.AvailableAmount, 1.0)
	})
}

func TestWithdrawalService_RequestWithdrawal(t *testing.T) {
	ctx := context.Background()

	t.Run("OwnerMismatch", func(t *testing.T) {
		_, accountRepo, _, _, _, svc := newWithdrawalFixture()
		accountRepo.On("GetByID", ctx, int32(1)).
			Return(&domain.Account{ID: 1, UserID: 2, Status: domain.AccountStatusActive}, nil).Once()

		_, _, err := svc.RequestWithdrawal(ctx, 99, 1, 50, "toys")
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("DeniedReturnsDecision", func(t *testing.T) {
		withdrawalRepo, accountRepo, depositRepo, _, _, svc := newWithdrawalFixture()
		accountRepo.On("GetByID", ctx, int32(1)).
			Return(&domain.Account{ID: 1, UserID: 2, Status: domain.AccountStatusActive}, nil).Twice()
		depositRepo.On("ListByAccount", ctx, int32(1)).
			Return([]domain.Deposit{}, nil).Once()

		w, decision, err := svc.RequestWithdrawal(ctx, 2, 1, 50, "toys")
		assert.NoError(t, err)
		assert.Nil(t, w)
		assert.False(t, decision.Allowed)
		withdrawalRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Success", func(t *testing.T) {
		withdrawalRepo, accountRepo, depositRepo, _, _, svc := newWithdrawalFixture()
		accountRepo.On("GetByID", ctx, int32(1)).
			Return(&domain.Account{ID: 1, UserID: 2, Status: domain.AccountStatusActive}, nil).Twice()
		depositRepo.On("ListByAccount", ctx, int32(1)).
			Return([]domain.Deposit{{
				ID:            1,
				Amount:        1200,
				VestingMonths: 12,
				Status:        domain.DepositStatusActive,
				CreatedAt:     monthsAgo(12),
			}}, nil).Once()
		withdrawalRepo.On("Create", ctx, mock.MatchedBy(func(w *domain.Withdrawal) bool {
			return w.Status == domain.WithdrawalStatusPending && w.Amount == 100 && w.RequestedBy == 2
		})).Return(nil).Once()

		w, decision, err := svc.RequestWithdrawal(ctx, 2, 1, 100, "toys")
		assert.NoError(t, err)
		assert.True(t, decision.Allowed)
		assert.Equal(t, domain.WithdrawalStatusPending, w.Status)
	})

	t.Run("InvalidAmount", func(t *testing.T) {
		_, _, _, _, _, svc := newWithdrawalFixture()

		_, _, err := svc.RequestWithdrawal(ctx, 2, 1, 0, "toys")
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})
}

func TestWithdrawalService_ApproveWithdrawal(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		withdrawalRepo, _, _, userRepo, emailSvc, svc := newWithdrawalFixture()

		pending := &domain.Withdrawal{ID: 5, RequestedBy: 2, Amount: 100, Status: domain.WithdrawalStatusPending}
		adminID := int32(1)
		approved := &domain.Withdrawal{ID: 5, RequestedBy: 2, Amount: 100, Status: domain.WithdrawalStatusApproved, ProcessedBy: &adminID}

		withdrawalRepo.On("GetByID", ctx, int32(5)).Return(pending, nil).Once()
		withdrawalRepo.On("Process", ctx, int32(5), domain.WithdrawalStatusApproved, int32(1), "ok").Return(nil).Once()
		withdrawalRepo.On("GetByID", ctx, int32(5)).Return(approved, nil).Once()
		userRepo.On("GetByID", ctx, int32(2)).Return(&domain.User{ID: 2, Name: "alice"}, nil).Once()
		emailSvc.On("SendWithdrawalDecisionNotice", ctx, "alice", 100.0, domain.WithdrawalStatusApproved, "ok").Return(nil).Once()

		w, err := svc.ApproveWithdrawal(ctx, 1, 5, "ok")
		assert.NoError(t, err)
		assert.Equal(t, domain.WithdrawalStatusApproved, w.Status)
		emailSvc.AssertExpectations(t)
	})

	t.Run("AlreadyProcessed", func(t *testing.T) {
		withdrawalRepo, _, _, _, _, svc := newWithdrawalFixture()

		done := &domain.Withdrawal{ID: 5, RequestedBy: 2, Status: domain.WithdrawalStatusRejected}
		withdrawalRepo.On("GetByID", ctx, int32(5)).Return(done, nil).Once()
		withdrawalRepo.On("Process", ctx, int32(5), domain.WithdrawalStatusApproved, int32(1), "").
			Return(domain.ErrAlreadyProcessed).Once()

		_, err := svc.ApproveWithdrawal(ctx, 1, 5, "")
		assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
	})

	t.Run("NotFound", func(t *testing.T) {
		withdrawalRepo, _, _, _, _, svc := newWithdrawalFixture()
		withdrawalRepo.On("GetByID", ctx, int32(5)).Return(nil, domain.ErrWithdrawalNotFound).Once()

		_, err := svc.RejectWithdrawal(ctx, 1, 5, "")
		assert.ErrorIs(t, err, domain.ErrWithdrawalNotFound)
	})
}
