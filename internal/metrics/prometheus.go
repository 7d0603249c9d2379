// Package metrics exports ledger activity to prometheus.
package metrics

import (
	"database/sql"
	"time"

	"fundsledger/internal/services/ledger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"
)

// Collector implements ledger.MetricsCollector.
type Collector struct {
	transfers *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	moved     prometheus.Counter
	cache     *prometheus.CounterVec
}

var _ ledger.MetricsCollector = (*Collector)(nil)

// New creates the ledger metrics and registers them on reg.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		transfers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_transfers_total",
			Help: "Transfer attempts by final status and abort reason.",
		}, []string{"status", "reason"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ledger_transfer_duration_seconds",
			Help:    "Time spent in a transfer attempt, validation to commit or rollback.",
			Buckets: prometheus.DefBuckets,
		}, []string{"status"}),
		moved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ledger_transferred_amount_total",
			Help: "Sum of all committed transfer amounts.",
		}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_account_cache_requests_total",
			Help: "Account cache lookups by operation and result.",
		}, []string{"operation", "result"}),
	}
	reg.MustRegister(c.transfers, c.duration, c.moved, c.cache)
	return c
}

func (c *Collector) RecordTransfer(status ledger.Status, reason ledger.Reason, amount decimal.Decimal, d time.Duration) {
	c.transfers.WithLabelValues(string(status), string(reason)).Inc()
	c.duration.WithLabelValues(string(status)).Observe(d.Seconds())
	if status == ledger.StatusCommitted {
		c.moved.Add(amount.InexactFloat64())
	}
}

func (c *Collector) RecordCacheHit(operation string) {
	c.cache.WithLabelValues(operation, "hit").Inc()
}

func (c *Collector) RecordCacheMiss(operation string) {
	c.cache.WithLabelValues(operation, "miss").Inc()
}

// RegisterDatabase exports pool statistics of db and the number of
// request-scoped connections currently held.
func RegisterDatabase(reg prometheus.Registerer, db *sql.DB, openConns func() int64) {
	reg.MustRegister(
		collectors.NewDBStatsCollector(db, "ledger"),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "ledger_request_connections_open",
			Help: "Connections acquired for a unit of work and not yet released.",
		}, func() float64 { return float64(openConns()) }),
	)
}
