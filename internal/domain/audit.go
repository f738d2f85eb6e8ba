package domain

import "time"

// Audit action names, kept stable for querying.
const (
	AuditActionLogin             = "LOGIN"
	AuditActionCreateUser        = "CREATE_USER"
	AuditActionCreateAccount     = "CREATE_ACCOUNT"
	AuditActionCreateDeposit     = "CREATE_DEPOSIT"
	AuditActionAwardPoints       = "AWARD_POINTS"
	AuditActionDeductPoints      = "DEDUCT_POINTS"
	AuditActionAdjustPoints      = "ADJUST_POINTS"
	AuditActionRequestWithdrawal = "REQUEST_WITHDRAWAL"
	AuditActionApproveWithdrawal = "APPROVE_WITHDRAWAL"
	AuditActionRejectWithdrawal  = "REJECT_WITHDRAWAL"
	AuditActionActivateDeposit   = "ACTIVATE_DEPOSIT"
	AuditActionCompleteDeposit   = "COMPLETE_DEPOSIT"
)

// AuditEntry is a fire-and-forget record of a mutating operation.
// Writing one must never fail the operation it describes.
type AuditEntry struct {
	ID           int64             `json:"id"`
	RequestID    string            `json:"request_id,omitempty"`
	ActorID      int32             `json:"actor_id"`
	Action       string            `json:"action"`
	TargetUserID *int32            `json:"target_user_id,omitempty"`
	Details      map[string]string `json:"details,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}
