package domain

import "errors"

var (
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInsufficientBalance    = errors.New("insufficient points balance")
	ErrLedgerConflict         = errors.New("ledger append conflict")

	ErrUserNotFound     = errors.New("user not found")
	ErrUserInactive     = errors.New("user is inactive")
	ErrAccountNotFound  = errors.New("account not found")
	ErrAccountExists    = errors.New("account already exists for user")
	ErrAccountLocked    = errors.New("account is locked")
	ErrAccountWithdrawn = errors.New("account has already been withdrawn")

	ErrWithdrawalNotFound = errors.New("withdrawal not found")
	ErrAlreadyProcessed   = errors.New("withdrawal has already been processed")

	ErrForbidden          = errors.New("access denied")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
