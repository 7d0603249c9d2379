package repositories

import (
	"context"

	"fundsledger/internal/models"

	"github.com/shopspring/decimal"
)

// AccountRepository defines the account and transfer-journal operations
// available on one connection or transaction.
type AccountRepository interface {
	// Reads
	GetByID(ctx context.Context, id uint) (*models.Account, error)
	List(ctx context.Context) ([]models.Account, error)
	Count(ctx context.Context) (int64, error)

	// Provisioning (seed data and tests only; never touches existing balances)
	Create(ctx context.Context, account *models.Account) error

	// Transaction-only operations
	GetForUpdate(ctx context.Context, id uint) (*models.Account, error)
	ApplyDelta(ctx context.Context, id uint, delta decimal.Decimal) (decimal.Decimal, error)
	CreateTransfer(ctx context.Context, transfer *models.Transfer) error

	// Journal
	ListTransfers(ctx context.Context, accountID uint, limit int) ([]models.Transfer, error)

	ExecuteInTransaction(ctx context.Context, fn func(AccountRepository) error) error
}
