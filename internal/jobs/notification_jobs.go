package jobs

import (
	"context"
	"strconv"

	"behaviorbank-backend/internal/logger"
)

// SendWithdrawalReminders nudges the household admin mailbox about
// withdrawal requests still waiting for a decision.
func (jr *JobRunner) SendWithdrawalReminders() {
	jr.runWithRecovery("SendWithdrawalReminders", func() {
		ctx := context.Background()

		pending, err := jr.store.WithdrawalRepository.CountPending(ctx)
		if err != nil {
			logger.Error("Failed to count pending withdrawals", "error", err)
			return
		}
		if pending == 0 {
			return
		}

		if err := jr.services.Email.SendPendingWithdrawalReminder(ctx, pending); err != nil {
			logger.Error("Failed to send withdrawal reminder", "pending", pending, "error", err)
			return
		}
		logger.Info("Sent withdrawal reminder", "pending", pending)
	})
}

func itoa(v int32) string {
	return strconv.Itoa(int(v))
}
