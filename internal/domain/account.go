package domain

import "time"

type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "ACTIVE"
	AccountStatusWithdrawn AccountStatus = "WITHDRAWN"
	AccountStatusLocked    AccountStatus = "LOCKED"
)

// Account holds a child's cash deposit position. One account per user.
// DepositAmount is the denormalized sum of all deposits, maintained by
// the deposit-creation path, not derived on read.
type Account struct {
	ID            int32         `json:"id"`
	UserID        int32         `json:"user_id"`
	DepositAmount float64       `json:"deposit_amount"`
	VestingStart  time.Time     `json:"vesting_start"`
	Status        AccountStatus `json:"status"`
	CreatedOn     time.Time     `json:"created_on"`
	UpdatedOn     time.Time     `json:"updated_on"`
}
