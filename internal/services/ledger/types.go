package ledger

import (
	"context"
	"fmt"
	"time"

	"fundsledger/internal/models"
	"fundsledger/internal/repositories"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TransferRequest asks the ledger to move Amount from FromID to ToID.
type TransferRequest struct {
	FromID          uint
	ToID            uint
	Amount          decimal.Decimal
	SimulateFailure bool
}

// Validate checks the request shape without touching storage.
func (r TransferRequest) Validate() error {
	if r.FromID == r.ToID {
		return fmt.Errorf("%w: source and destination are the same account", ErrInvalidRequest)
	}
	if !r.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", ErrInvalidRequest)
	}
	if !r.Amount.Equal(r.Amount.Round(models.BalancePrecision)) {
		return fmt.Errorf("%w: amount has more than %d decimal places", ErrInvalidRequest, models.BalancePrecision)
	}
	return nil
}

// Status is the final state of a transfer attempt.
type Status string

const (
	StatusCommitted Status = "committed"
	StatusAborted   Status = "aborted"
)

// Reason explains why a transfer was aborted.
type Reason string

const (
	ReasonInvalidRequest    Reason = "invalid-request"
	ReasonAccountNotFound   Reason = "account-not-found"
	ReasonInsufficientFunds Reason = "insufficient-funds"
	ReasonSimulatedFailure  Reason = "simulated-failure"
	ReasonStorageError      Reason = "storage-error"
)

// Outcome is the result of a transfer attempt. An aborted outcome never
// corresponds to a partially applied transfer.
type Outcome struct {
	Status      Status          `json:"status"`
	Reason      Reason          `json:"reason,omitempty"`
	MovedAmount decimal.Decimal `json:"moved_amount"`
	FromID      uint            `json:"from_id"`
	ToID        uint            `json:"to_id"`
	Reference   string          `json:"reference,omitempty"`
	Transient   bool            `json:"transient,omitempty"`
	Err         error           `json:"-"`
}

// Committed reports whether the funds moved.
func (o Outcome) Committed() bool {
	return o.Status == StatusCommitted
}

func committed(req TransferRequest, reference string) Outcome {
	return Outcome{
		Status:      StatusCommitted,
		MovedAmount: req.Amount,
		FromID:      req.FromID,
		ToID:        req.ToID,
		Reference:   reference,
	}
}

func aborted(req TransferRequest, err error) Outcome {
	return Outcome{
		Status:      StatusAborted,
		Reason:      ReasonFor(err),
		MovedAmount: decimal.Zero,
		FromID:      req.FromID,
		ToID:        req.ToID,
		Transient:   repositories.IsTransient(err),
		Err:         err,
	}
}

// PreCommitHook runs after all writes of a transfer and right before commit.
// A non-nil error rolls the transfer back. Simulated failures are handled
// before any configured hook runs.
type PreCommitHook func(ctx context.Context, req TransferRequest) error

// Conn is the request-scoped storage handle the ledger operates on.
// *repositories.Conn satisfies it.
type Conn interface {
	Accounts() repositories.AccountRepository
	ExecuteInTransaction(ctx context.Context, fn func(repositories.AccountRepository) error) error
}

// AccountCache holds account snapshots for the read path. A snapshot is
// stored only if no Invalidate ran since the generation it was read under.
type AccountCache interface {
	Generation(ctx context.Context) (int64, error)
	GetAccount(ctx context.Context, id uint) (*models.Account, bool, error)
	SetAccount(ctx context.Context, generation int64, account *models.Account) error
	GetAccounts(ctx context.Context) ([]models.Account, bool, error)
	SetAccounts(ctx context.Context, generation int64, accounts []models.Account) error
	Invalidate(ctx context.Context, ids ...uint) error
}

// MetricsCollector defines the interface for collecting ledger metrics
type MetricsCollector interface {
	RecordTransfer(status Status, reason Reason, amount decimal.Decimal, duration time.Duration)
	RecordCacheHit(operation string)
	RecordCacheMiss(operation string)
}

// LedgerConfig holds configuration for ledger operations
type LedgerConfig struct {
	// Timeout bounds a whole transfer; past it the transaction rolls back.
	Timeout   time.Duration
	PreCommit PreCommitHook
	Logger    *zap.Logger
}
