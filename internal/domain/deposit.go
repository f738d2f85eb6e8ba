package domain

import "time"

type DepositStatus string

const (
	DepositStatusPending   DepositStatus = "PENDING"
	DepositStatusActive    DepositStatus = "ACTIVE"
	DepositStatusCompleted DepositStatus = "COMPLETED"
)

// Deposit is a single cash contribution. Each deposit vests on its own
// clock: CreatedAt is the vesting start, VestingMonths the committed
// length. Multiple deposits per account vest independently.
type Deposit struct {
	ID            int32         `json:"id"`
	AccountID     int32         `json:"account_id"`
	Amount        float64       `json:"amount"`
	DepositedBy   int32         `json:"deposited_by"`
	VestingMonths int32         `json:"vesting_months"`
	Status        DepositStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
