package domain

import "errors"

// Sentinel errors returned by the ledger and settlement services. Handlers
// match these with errors.Is and map them to HTTP statuses; anything else is
// treated as an infrastructure failure.
var (
	ErrNotFound                 = errors.New("record not found")
	ErrOrderNotFound            = errors.New("order not found")
	ErrOrderNotPaid             = errors.New("order is not paid")
	ErrOrderNotPending          = errors.New("order is not pending")
	ErrProductNotAvailable      = errors.New("product not available")
	ErrProfileIncomplete        = errors.New("buyer profile incomplete")
	ErrInsufficientBalance      = errors.New("insufficient available balance")
	ErrInvalidPayoutAmount      = errors.New("invalid payout amount")
	ErrInvalidPayoutOutcome     = errors.New("invalid payout outcome")
	ErrMissingPayoutDestination = errors.New("payout destination details missing")
)
