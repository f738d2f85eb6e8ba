package domain

import "time"

type WithdrawalStatus string

const (
	WithdrawalStatusPending  WithdrawalStatus = "PENDING"
	WithdrawalStatusApproved WithdrawalStatus = "APPROVED"
	WithdrawalStatusRejected WithdrawalStatus = "REJECTED"
)

// Withdrawal is a cash-out request. Created PENDING by the account
// owner, transitioned exactly once to APPROVED or REJECTED by an admin,
// terminal thereafter.
type Withdrawal struct {
	ID          int32            `json:"id"`
	AccountID   int32            `json:"account_id"`
	RequestedBy int32            `json:"requested_by"`
	Amount      float64          `json:"amount"`
	Reason      string           `json:"reason"`
	Status      WithdrawalStatus `json:"status"`
	ProcessedBy *int32           `json:"processed_by,omitempty"`
	ProcessedAt *time.Time       `json:"processed_at,omitempty"`
	Notes       string           `json:"notes,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// WithdrawalDecision is the eligibility engine's verdict for a
// requested amount. A denial is a decision, not an error.
type WithdrawalDecision struct {
	Allowed         bool    `json:"allowed"`
	AvailableAmount float64 `json:"available_amount"`
	Reason          string  `json:"reason,omitempty"`
}
