package ledger

import "errors"

// Service errors
var (
	ErrInvalidRequest    = errors.New("invalid transfer request")
	ErrAccountNotFound   = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSimulatedFailure  = errors.New("simulated failure")
	ErrStorage           = errors.New("storage failure")
)

// ReasonFor maps an error returned by the ledger to the abort reason it stands for.
func ReasonFor(err error) Reason {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidRequest):
		return ReasonInvalidRequest
	case errors.Is(err, ErrAccountNotFound):
		return ReasonAccountNotFound
	case errors.Is(err, ErrInsufficientFunds):
		return ReasonInsufficientFunds
	case errors.Is(err, ErrSimulatedFailure):
		return ReasonSimulatedFailure
	default:
		return ReasonStorageError
	}
}
