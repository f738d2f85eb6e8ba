package domain

import "time"

type TransactionType string

const (
	TransactionTypeEarn   TransactionType = "EARN"
	TransactionTypeSpend  TransactionType = "SPEND"
	TransactionTypeAdjust TransactionType = "ADJUST"
	TransactionTypeBonus  TransactionType = "BONUS"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeEarn, TransactionTypeSpend, TransactionTypeAdjust, TransactionTypeBonus:
		return true
	}
	return false
}

// PointTransaction is one immutable row of a user's points ledger.
// Amount is signed: positive for EARN/BONUS and upward ADJUST, negative
// for SPEND and downward ADJUST. BalanceAfter is the running balance
// snapshotted at append time; it is never recomputed from older rows.
type PointTransaction struct {
	ID           int64             `json:"id"`
	UserID       int32             `json:"user_id"`
	Type         TransactionType   `json:"type"`
	Amount       int32             `json:"amount"`
	Description  string            `json:"description"`
	BalanceAfter int32             `json:"balance_after"`
	CreatedBy    int32             `json:"created_by"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

// TransactionFilter narrows history queries.
type TransactionFilter struct {
	Type     TransactionType
	FromDate *time.Time
	ToDate   *time.Time
}

// TransactionPage is one page of ledger history, newest first.
type TransactionPage struct {
	Transactions []PointTransaction `json:"transactions"`
	Total        int32              `json:"total"`
	Page         int32              `json:"page"`
	Limit        int32              `json:"limit"`
	TotalPages   int32              `json:"total_pages"`
}

// LedgerMutation is the outcome of an award/deduct/adjust.
type LedgerMutation struct {
	NewBalance  int32             `json:"new_balance"`
	Transaction *PointTransaction `json:"transaction"`
}
