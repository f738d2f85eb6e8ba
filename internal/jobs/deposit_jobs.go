package jobs

import (
	"context"
	"time"

	"behaviorbank-backend/internal/domain"
	"behaviorbank-backend/internal/logger"
	"behaviorbank-backend/internal/vesting"
)

// ActivatePendingDeposits moves deposits out of PENDING once the money
// has cleared. Deposits created through the API start ACTIVE; PENDING
// covers imports and manual bookkeeping rows.
func (jr *JobRunner) ActivatePendingDeposits() {
	jr.runWithRecovery("ActivatePendingDeposits", func() {
		ctx := context.Background()

		deposits, err := jr.store.DepositRepository.ListByStatus(ctx, domain.DepositStatusPending)
		if err != nil {
			logger.Error("Failed to list pending deposits", "error", err)
			return
		}

		activated := 0
		for _, d := range deposits {
			err := jr.store.DepositRepository.UpdateStatus(ctx, d.ID, domain.DepositStatusPending, domain.DepositStatusActive)
			if err != nil {
				logger.Error("Failed to activate deposit", "deposit_id", d.ID, "error", err)
				continue
			}
			jr.services.Audit.Record(ctx, 0, domain.AuditActionActivateDeposit, nil, map[string]string{
				"deposit_id": itoa(d.ID),
			})
			activated++
		}

		if activated > 0 {
			logger.Info("Activated pending deposits", "count", activated)
		}
	})
}

// CompleteVestedDeposits marks deposits whose full commitment has
// elapsed. Completion only stops further interest accrual; a completed
// deposit stays withdrawable at its matured value.
func (jr *JobRunner) CompleteVestedDeposits() {
	jr.runWithRecovery("CompleteVestedDeposits", func() {
		ctx := context.Background()
		now := time.Now()

		deposits, err := jr.store.DepositRepository.ListByStatus(ctx, domain.DepositStatusActive)
		if err != nil {
			logger.Error("Failed to list active deposits", "error", err)
			return
		}

		completed := 0
		for _, d := range deposits {
			res := vesting.Vest(d.Amount, d.CreatedAt, d.VestingMonths, now)
			if !res.IsFullyVested {
				continue
			}

			err := jr.store.DepositRepository.UpdateStatus(ctx, d.ID, domain.DepositStatusActive, domain.DepositStatusCompleted)
			if err != nil {
				logger.Error("Failed to complete deposit", "deposit_id", d.ID, "error", err)
				continue
			}
			jr.services.Audit.Record(ctx, 0, domain.AuditActionCompleteDeposit, nil, map[string]string{
				"deposit_id": itoa(d.ID),
			})
			completed++
		}

		if completed > 0 {
			logger.Info("Completed vested deposits", "count", completed)
		}
	})
}
