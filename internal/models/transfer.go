package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer is the journal entry of a committed funds transfer. It is written
// in the same database transaction as the balance changes it describes.
type Transfer struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	Reference     string          `gorm:"uniqueIndex;not null" json:"reference"`
	FromAccountID uint            `gorm:"index;not null" json:"from_account_id"`
	ToAccountID   uint            `gorm:"index;not null" json:"to_account_id"`
	Amount        decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	CreatedAt     time.Time       `json:"created_at"`
}
