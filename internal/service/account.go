package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"behaviorbank-backend/internal/domain"
	"behaviorbank-backend/internal/repository"
	"behaviorbank-backend/internal/vesting"
)

type accountService struct {
	accountRepo repository.AccountRepository
	depositRepo repository.DepositRepository
	userRepo    repository.UserRepository
	auditSvc    AuditService
}

func NewAccountService(accountRepo repository.AccountRepository, depositRepo repository.DepositRepository, userRepo repository.UserRepository, auditSvc AuditService) AccountService {
	return &accountService{
		accountRepo: accountRepo,
		depositRepo: depositRepo,
		userRepo:    userRepo,
		auditSvc:    auditSvc,
	}
}

func (s *accountService) CreateAccount(ctx context.Context, actorID, userID int32) (*domain.Account, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	_, err := s.accountRepo.GetByUserID(ctx, userID)
	if err == nil {
		return nil, domain.ErrAccountExists
	}
	if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	account := &domain.Account{
		UserID:       userID,
		VestingStart: time.Now(),
		Status:       domain.AccountStatusActive,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, actorID, domain.AuditActionCreateAccount, &userID, map[string]string{
		"account_id": fmt.Sprintf("%d", account.ID),
	})
	return account, nil
}

func (s *accountService) GetAccount(ctx context.Context, id int32) (*domain.Account, error) {
	return s.accountRepo.GetByID(ctx, id)
}

func (s *accountService) GetAccountByUser(ctx context.Context, userID int32) (*domain.Account, error) {
	return s.accountRepo.GetByUserID(ctx, userID)
}

func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.accountRepo.List(ctx)
}

// CreateDeposit opens a new independently vesting deposit and keeps the
// account's denormalized principal sum in step.
func (s *accountService) CreateDeposit(ctx context.Context, actorID, accountID int32, amount float64, vestingMonths int32) (*domain.Deposit, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if vestingMonths == 0 {
		vestingMonths = vesting.DefaultMonths
	}
	if vestingMonths < vesting.MinMonths || vestingMonths > vesting.MaxMonths {
		return nil, fmt.Errorf("vesting months must be between %d and %d", vesting.MinMonths, vesting.MaxMonths)
	}

	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	deposit := &domain.Deposit{
		AccountID:     accountID,
		Amount:        amount,
		DepositedBy:   actorID,
		VestingMonths: vestingMonths,
		Status:        domain.DepositStatusActive,
	}
	if err := s.depositRepo.Create(ctx, deposit); err != nil {
		return nil, err
	}

	if err := s.accountRepo.AddToDepositAmount(ctx, accountID, amount); err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, actorID, domain.AuditActionCreateDeposit, &account.UserID, map[string]string{
		"deposit_id":     fmt.Sprintf("%d", deposit.ID),
		"account_id":     fmt.Sprintf("%d", accountID),
		"amount":         fmt.Sprintf("%.2f", amount),
		"vesting_months": fmt.Sprintf("%d", vestingMonths),
	})
	return deposit, nil
}

func (s *accountService) ListDeposits(ctx context.Context, accountID int32) ([]domain.Deposit, error) {
	return s.depositRepo.ListByAccount(ctx, accountID)
}
