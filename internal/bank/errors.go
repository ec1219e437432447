package bank

import "errors"

// Domain errors. The presentation layer renders every failure the same
// way (no state change, no message), but callers and tests can still
// tell the causes apart.
var (
	ErrUnknownAccount     = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNonPositiveAmount  = errors.New("amount must be positive")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrSelfTransfer       = errors.New("cannot transfer to the same account")
	ErrUnknownRecipient   = errors.New("unknown recipient")
	ErrLoanDenied         = errors.New("loan request denied")
	ErrNotLoggedIn        = errors.New("no authenticated account")
)
