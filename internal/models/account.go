package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BalancePrecision is the number of fractional digits kept for balances and amounts.
const BalancePrecision = 2

// Account is a named balance holder. Balances are never negative outside
// an open ledger transaction.
type Account struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	Name      string          `gorm:"not null" json:"name"`
	Balance   decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Details renders the account the way transfer choices are labelled,
// e.g. "Alice (100.00)".
func (a Account) Details() string {
	return fmt.Sprintf("%s (%s)", a.Name, a.Balance.StringFixed(BalancePrecision))
}
