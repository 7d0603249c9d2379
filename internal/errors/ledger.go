package errors

import (
	"net/http"

	"fundsledger/internal/services/ledger"
)

var (
	ErrInvalidRequest = &DomainError{
		Code:    "INVALID_REQUEST",
		Message: "invalid transfer request",
		Status:  http.StatusBadRequest,
	}
	ErrAccountNotFound = &DomainError{
		Code:    "ACCOUNT_NOT_FOUND",
		Message: "account not found",
		Status:  http.StatusNotFound,
	}
	ErrInsufficientFunds = &DomainError{
		Code:    "INSUFFICIENT_FUNDS",
		Message: "insufficient funds",
		Status:  http.StatusUnprocessableEntity,
	}
	ErrSimulatedFailure = &DomainError{
		Code:    "SIMULATED_FAILURE",
		Message: "transfer rolled back by simulated failure",
		Status:  http.StatusConflict,
	}
	ErrStorage = &DomainError{
		Code:    "STORAGE_ERROR",
		Message: "transfer failed, nothing was changed",
		Status:  http.StatusServiceUnavailable,
	}
)

// ForReason returns the client-facing error for an aborted transfer.
func ForReason(reason ledger.Reason) *DomainError {
	switch reason {
	case ledger.ReasonInvalidRequest:
		return ErrInvalidRequest
	case ledger.ReasonAccountNotFound:
		return ErrAccountNotFound
	case ledger.ReasonInsufficientFunds:
		return ErrInsufficientFunds
	case ledger.ReasonSimulatedFailure:
		return ErrSimulatedFailure
	default:
		return ErrStorage
	}
}

// ForError maps an error from a ledger read to its client-facing error.
func ForError(err error) *DomainError {
	return ForReason(ledger.ReasonFor(err))
}
