package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"behaviorbank-backend/internal/domain"
	"behaviorbank-backend/internal/logger"
	"behaviorbank-backend/internal/repository"
	"behaviorbank-backend/internal/vesting"
)

type withdrawalService struct {
	withdrawalRepo repository.WithdrawalRepository
	accountRepo    repository.AccountRepository
	depositRepo    repository.DepositRepository
	userRepo       repository.UserRepository
	auditSvc       AuditService
	emailSvc       EmailService
	now            func() time.Time
}

func NewWithdrawalService(
	withdrawalRepo repository.WithdrawalRepository,
	accountRepo repository.AccountRepository,
	depositRepo repository.DepositRepository,
	userRepo repository.UserRepository,
	auditSvc AuditService,
	emailSvc EmailService,
) WithdrawalService {
	return &withdrawalService{
		withdrawalRepo: withdrawalRepo,
		accountRepo:    accountRepo,
		depositRepo:    depositRepo,
		userRepo:       userRepo,
		auditSvc:       auditSvc,
		emailSvc:       emailSvc,
		now:            time.Now,
	}
}

// computeAvailable sums vested principal plus accrued simple interest
// over the account's deposits. PENDING deposits are money that has not
// cleared and are skipped; ACTIVE and COMPLETED both count, since
// completion only stops further accrual. Interest accrues on the vested
// portion at the rate the deposit's committed length earns, and stops
// at the commitment.
func (s *withdrawalService) computeAvailable(ctx context.Context, accountID int32) (float64, error) {
	deposits, err := s.depositRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return 0, err
	}

	now := s.now()
	var total float64
	for _, d := range deposits {
		if d.Status == domain.DepositStatusPending {
			continue
		}
		res := vesting.Vest(d.Amount, d.CreatedAt, d.VestingMonths, now)

		monthsForInterest := vesting.MonthsBetween(d.CreatedAt, now)
		if monthsForInterest > float64(d.VestingMonths) {
			monthsForInterest = float64(d.VestingMonths)
		}
		interest := vesting.Interest(res.VestedAmount, vesting.RateFor(d.VestingMonths), monthsForInterest)

		total += res.VestedAmount + interest
	}
	return total, nil
}

func (s *withdrawalService) CanWithdraw(ctx context.Context, accountID int32, requestedAmount float64) (*domain.WithdrawalDecision, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if errors.Is(err, domain.ErrAccountNotFound) {
		return &domain.WithdrawalDecision{Reason: "Account not found"}, nil
	}
	if err != nil {
		return nil, err
	}

	switch account.Status {
	case domain.AccountStatusLocked:
		return &domain.WithdrawalDecision{Reason: "Account is locked"}, nil
	case domain.AccountStatusWithdrawn:
		return &domain.WithdrawalDecision{Reason: "Account has already been withdrawn"}, nil
	}

	available, err := s.computeAvailable(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if requestedAmount > available {
		return &domain.WithdrawalDecision{
			AvailableAmount: available,
			Reason:          fmt.Sprintf("Only %.2f is available (vested + interest)", available),
		}, nil
	}

	return &domain.WithdrawalDecision{Allowed: true, AvailableAmount: available}, nil
}

func (s *withdrawalService) GetAvailableBalance(ctx context.Context, accountID int32) (float64, error) {
	decision, err := s.CanWithdraw(ctx, accountID, 0)
	if err != nil {
		return 0, err
	}
	return decision.AvailableAmount, nil
}

func (s *withdrawalService) RequestWithdrawal(ctx context.Context, requesterID, accountID int32, amount float64, reason string) (*domain.Withdrawal, *domain.WithdrawalDecision, error) {
	if amount <= 0 {
		return nil, nil, domain.ErrInvalidAmount
	}

	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}
	if account.UserID != requesterID {
		return nil, nil, domain.ErrForbidden
	}

	decision, err := s.CanWithdraw(ctx, accountID, amount)
	if err != nil {
		return nil, nil, err
	}
	if !decision.Allowed {
		return nil, decision, nil
	}

	w := &domain.Withdrawal{
		AccountID:   accountID,
		RequestedBy: requesterID,
		Amount:      amount,
		Reason:      reason,
		Status:      domain.WithdrawalStatusPending,
	}
	if err := s.withdrawalRepo.Create(ctx, w); err != nil {
		return nil, nil, err
	}

	s.auditSvc.Record(ctx, requesterID, domain.AuditActionRequestWithdrawal, nil, map[string]string{
		"withdrawal_id": fmt.Sprintf("%d", w.ID),
		"account_id":    fmt.Sprintf("%d", accountID),
		"amount":        fmt.Sprintf("%.2f", amount),
		"reason":        reason,
	})
	return w, decision, nil
}

func (s *withdrawalService) ApproveWithdrawal(ctx context.Context, adminID, withdrawalID int32, notes string) (*domain.Withdrawal, error) {
	return s.process(ctx, adminID, withdrawalID, domain.WithdrawalStatusApproved, notes, domain.AuditActionApproveWithdrawal)
}

func (s *withdrawalService) RejectWithdrawal(ctx context.Context, adminID, withdrawalID int32, notes string) (*domain.Withdrawal, error) {
	return s.process(ctx, adminID, withdrawalID, domain.WithdrawalStatusRejected, notes, domain.AuditActionRejectWithdrawal)
}

func (s *withdrawalService) process(ctx context.Context, adminID, withdrawalID int32, status domain.WithdrawalStatus, notes, auditAction string) (*domain.Withdrawal, error) {
	if _, err := s.withdrawalRepo.GetByID(ctx, withdrawalID); err != nil {
		return nil, err
	}

	// Single compare-and-swap on status: whichever admin decision lands
	// first wins, the loser gets ErrAlreadyProcessed.
	if err := s.withdrawalRepo.Process(ctx, withdrawalID, status, adminID, notes); err != nil {
		return nil, err
	}

	w, err := s.withdrawalRepo.GetByID(ctx, withdrawalID)
	if err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, adminID, auditAction, &w.RequestedBy, map[string]string{
		"withdrawal_id": fmt.Sprintf("%d", w.ID),
		"amount":        fmt.Sprintf("%.2f", w.Amount),
		"notes":         notes,
	})

	if requester, err := s.userRepo.GetByID(ctx, w.RequestedBy); err == nil {
		if err := s.emailSvc.SendWithdrawalDecisionNotice(ctx, requester.Name, w.Amount, status, notes); err != nil {
			logger.Warn("failed to send withdrawal notice", "withdrawal_id", w.ID, "error", err)
		}
	}
	return w, nil
}

func (s *withdrawalService) ListWithdrawals(ctx context.Context, status domain.WithdrawalStatus, requestedBy int32) ([]domain.Withdrawal, error) {
	return s.withdrawalRepo.List(ctx, status, requestedBy)
}
