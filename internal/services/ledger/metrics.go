package ledger

import (
	"context"
	"time"

	"fundsledger/internal/models"

	"github.com/shopspring/decimal"
)

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordTransfer(Status, Reason, decimal.Decimal, time.Duration) {}
func (n *NoopMetricsCollector) RecordCacheHit(string)                                         {}
func (n *NoopMetricsCollector) RecordCacheMiss(string)                                        {}

// NoopCache never holds anything; every read goes to storage.
type NoopCache struct{}

func (NoopCache) Generation(context.Context) (int64, error) { return 0, nil }
func (NoopCache) GetAccount(context.Context, uint) (*models.Account, bool, error) {
	return nil, false, nil
}
func (NoopCache) SetAccount(context.Context, int64, *models.Account) error { return nil }
func (NoopCache) GetAccounts(context.Context) ([]models.Account, bool, error) {
	return nil, false, nil
}
func (NoopCache) SetAccounts(context.Context, int64, []models.Account) error { return nil }
func (NoopCache) Invalidate(context.Context, ...uint) error                  { return nil }
