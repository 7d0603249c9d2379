package errors

import (
	"fmt"
	"net/http"
	"testing"

	"fundsledger/internal/services/ledger"

	"github.com/stretchr/testify/assert"
)

func TestForReason(t *testing.T) {
	tests := []struct {
		reason ledger.Reason
		code   string
		status int
	}{
		{ledger.ReasonInvalidRequest, "INVALID_REQUEST", http.StatusBadRequest},
		{ledger.ReasonAccountNotFound, "ACCOUNT_NOT_FOUND", http.StatusNotFound},
		{ledger.ReasonInsufficientFunds, "INSUFFICIENT_FUNDS", http.StatusUnprocessableEntity},
		{ledger.ReasonSimulatedFailure, "SIMULATED_FAILURE", http.StatusConflict},
		{ledger.ReasonStorageError, "STORAGE_ERROR", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(string(tt.reason), func(t *testing.T) {
			got := ForReason(tt.reason)
			assert.Equal(t, tt.code, got.Code)
			assert.Equal(t, tt.status, got.Status)
		})
	}
}

func TestForError(t *testing.T) {
	assert.Equal(t, ErrAccountNotFound, ForError(fmt.Errorf("lookup: %w", ledger.ErrAccountNotFound)))
	assert.Equal(t, ErrStorage, ForError(fmt.Errorf("lookup: %w", ledger.ErrStorage)))
	assert.Equal(t, "STORAGE_ERROR: transfer failed, nothing was changed", ErrStorage.Error())
}
