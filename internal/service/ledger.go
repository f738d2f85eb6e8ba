package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"behaviorbank-backend/internal/cache"
	"behaviorbank-backend/internal/domain"
	"behaviorbank-backend/internal/logger"
	"behaviorbank-backend/internal/repository"
)

// maxAppendRetries bounds the retry loop around the compare-and-append.
// A conflict means another writer appended between our balance read and
// our insert; re-reading and retrying restores the balanceAfter
// invariant without caller involvement.
const maxAppendRetries = 3

type ledgerService struct {
	ledgerRepo   repository.LedgerRepository
	balanceCache cache.BalanceCache
	auditSvc     AuditService
	defaultLimit int32
	maxLimit     int32
}

func NewLedgerService(ledgerRepo repository.LedgerRepository, balanceCache cache.BalanceCache, auditSvc AuditService, defaultLimit, maxLimit int32) LedgerService {
	if defaultLimit <= 0 {
		defaultLimit = 20
	}
	if maxLimit <= 0 {
		maxLimit = 100
	}
	return &ledgerService{
		ledgerRepo:   ledgerRepo,
		balanceCache: balanceCache,
		auditSvc:     auditSvc,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

func (s *ledgerService) GetBalance(ctx context.Context, userID int32) (int32, error) {
	if s.balanceCache != nil {
		if balance, err := s.balanceCache.Get(ctx, userID); err == nil {
			return balance, nil
		}
	}

	_, balance, err := s.ledgerRepo.GetLatest(ctx, userID)
	if err != nil {
		return 0, err
	}

	if s.balanceCache != nil {
		if err := s.balanceCache.Set(ctx, userID, balance); err != nil {
			logger.Warn("failed to cache balance", "user_id", userID, "error", err)
		}
	}
	return balance, nil
}

func (s *ledgerService) Award(ctx context.Context, actorID, userID int32, amount int32, description string, txType domain.TransactionType, metadata map[string]string) (*domain.LedgerMutation, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if txType == "" {
		txType = domain.TransactionTypeEarn
	}
	if !txType.Valid() || txType == domain.TransactionTypeSpend {
		return nil, domain.ErrInvalidTransactionType
	}

	mutation, err := s.append(ctx, userID, func(balance int32) (int32, error) {
		return amount, nil
	}, txType, description, actorID, metadata)
	if err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, actorID, domain.AuditActionAwardPoints, &userID, map[string]string{
		"amount":      strconv.Itoa(int(amount)),
		"type":        string(txType),
		"description": description,
		"new_balance": strconv.Itoa(int(mutation.NewBalance)),
	})
	return mutation, nil
}

func (s *ledgerService) Deduct(ctx context.Context, actorID, userID int32, amount int32, description string, metadata map[string]string) (*domain.LedgerMutation, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	mutation, err := s.append(ctx, userID, func(balance int32) (int32, error) {
		if balance < amount {
			return 0, domain.ErrInsufficientBalance
		}
		return -amount, nil
	}, domain.TransactionTypeSpend, description, actorID, metadata)
	if err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, actorID, domain.AuditActionDeductPoints, &userID, map[string]string{
		"amount":      strconv.Itoa(int(amount)),
		"description": description,
		"new_balance": strconv.Itoa(int(mutation.NewBalance)),
	})
	return mutation, nil
}

func (s *ledgerService) Adjust(ctx context.Context, actorID, userID int32, delta int32, description string, metadata map[string]string) (*domain.LedgerMutation, error) {
	if delta == 0 {
		return nil, domain.ErrInvalidAmount
	}

	// No balance guard: an adjustment is the sanctioned way for an
	// admin to push a balance negative (penalties), which the dashboard
	// penalty rule then picks up.
	mutation, err := s.append(ctx, userID, func(balance int32) (int32, error) {
		return delta, nil
	}, domain.TransactionTypeAdjust, description, actorID, metadata)
	if err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, actorID, domain.AuditActionAdjustPoints, &userID, map[string]string{
		"delta":       strconv.Itoa(int(delta)),
		"description": description,
		"new_balance": strconv.Itoa(int(mutation.NewBalance)),
	})
	return mutation, nil
}

// append reads the latest balance, lets signedAmount decide the delta,
// and compare-and-appends the new row. The previous transaction id is
// the precondition; on conflict the whole read-decide-append cycle
// reruns against fresh state.
func (s *ledgerService) append(ctx context.Context, userID int32, signedAmount func(balance int32) (int32, error), txType domain.TransactionType, description string, actorID int32, metadata map[string]string) (*domain.LedgerMutation, error) {
	var lastErr error
	for attempt := 0; attempt < maxAppendRetries; attempt++ {
		prevTxID, balance, err := s.ledgerRepo.GetLatest(ctx, userID)
		if err != nil {
			return nil, err
		}

		delta, err := signedAmount(balance)
		if err != nil {
			return nil, err
		}

		tx := &domain.PointTransaction{
			UserID:       userID,
			Type:         txType,
			Amount:       delta,
			Description:  description,
			BalanceAfter: balance + delta,
			CreatedBy:    actorID,
			Metadata:     metadata,
		}

		err = s.ledgerRepo.AppendTransaction(ctx, tx, prevTxID)
		if errors.Is(err, domain.ErrLedgerConflict) {
			lastErr = err
			continue
		}
		if err != nil {
			return nil, err
		}

		if s.balanceCache != nil {
			if err := s.balanceCache.Invalidate(ctx, userID); err != nil {
				logger.Warn("failed to invalidate balance cache", "user_id", userID, "error", err)
			}
		}
		return &domain.LedgerMutation{NewBalance: tx.BalanceAfter, Transaction: tx}, nil
	}
	return nil, fmt.Errorf("ledger append for user %d: %w", userID, lastErr)
}

func (s *ledgerService) GetHistory(ctx context.Context, userID int32, filter domain.TransactionFilter, page, limit int32) (*domain.TransactionPage, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, domain.ErrInvalidTransactionType
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	transactions, total, err := s.ledgerRepo.ListTransactions(ctx, userID, filter, page, limit)
	if err != nil {
		return nil, err
	}

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	return &domain.TransactionPage{
		Transactions: transactions,
		Total:        total,
		Page:         page,
		Limit:        limit,
		TotalPages:   totalPages,
	}, nil
}
