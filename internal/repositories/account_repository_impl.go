package repositories

import (
	"context"
	"errors"
	"fmt"

	"fundsledger/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountRepository struct {
	db   *gorm.DB
	inTx bool
}

// NewAccountRepository returns a repository running outside any transaction.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) GetByID(ctx context.Context, id uint) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) List(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (r *accountRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Account{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return count, nil
}

func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	if account.Balance.IsNegative() {
		return ErrInsufficientFunds
	}
	account.Balance = account.Balance.Round(models.BalancePrecision)
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetForUpdate reads the account and holds a row lock on it until the
// surrounding transaction ends.
func (r *accountRepository) GetForUpdate(ctx context.Context, id uint) (*models.Account, error) {
	if !r.inTx {
		return nil, ErrNoTransaction
	}
	var account models.Account
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&account, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to lock account: %w", err)
	}
	return &account, nil
}

// ApplyDelta adds delta (which may be negative) to the balance and returns
// the new balance. It refuses to leave the balance below zero.
func (r *accountRepository) ApplyDelta(ctx context.Context, id uint, delta decimal.Decimal) (decimal.Decimal, error) {
	account, err := r.GetForUpdate(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}

	balance := account.Balance.Add(delta).Round(models.BalancePrecision)
	if balance.IsNegative() {
		return decimal.Zero, ErrInsufficientFunds
	}

	result := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", id).
		Update("balance", balance)
	if result.Error != nil {
		return decimal.Zero, fmt.Errorf("failed to update balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return decimal.Zero, ErrAccountNotFound
	}
	return balance, nil
}

func (r *accountRepository) CreateTransfer(ctx context.Context, transfer *models.Transfer) error {
	if !r.inTx {
		return ErrNoTransaction
	}
	if err := r.db.WithContext(ctx).Create(transfer).Error; err != nil {
		return fmt.Errorf("failed to record transfer: %w", err)
	}
	return nil
}

func (r *accountRepository) ListTransfers(ctx context.Context, accountID uint, limit int) ([]models.Transfer, error) {
	var transfers []models.Transfer
	err := r.db.WithContext(ctx).
		Where("from_account_id = ? OR to_account_id = ?", accountID, accountID).
		Order("id DESC").
		Limit(limit).
		Find(&transfers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}
	return transfers, nil
}

func (r *accountRepository) ExecuteInTransaction(ctx context.Context, fn func(AccountRepository) error) error {
	if r.inTx {
		return ErrConnBusy
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&accountRepository{db: tx, inTx: true})
	})
}
