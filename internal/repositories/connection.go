package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"sync/atomic"

	"gorm.io/gorm"
)

// ConnManager hands out dedicated storage connections, one per unit of
// work (typically one inbound request).
type ConnManager struct {
	db *gorm.DB

	open atomic.Int64
}

// NewConnManager creates a connection manager over the pooled database.
func NewConnManager(db *gorm.DB) *ConnManager {
	return &ConnManager{db: db}
}

// Conn is a storage connection owned by a single unit of work. At most one
// top-level transaction may be open on it at a time.
type Conn struct {
	db      *gorm.DB
	raw     *sql.Conn
	manager *ConnManager

	txMu     sync.Mutex
	released atomic.Bool
}

// Acquire takes a dedicated connection out of the pool. The caller must
// pass it to Release on every exit path.
func (m *ConnManager) Acquire(ctx context.Context) (*Conn, error) {
	sqlDB, err := m.db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	raw, err := sqlDB.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}

	// Context forces a fresh statement so the root handle keeps its pool.
	session := m.db.Session(&gorm.Session{NewDB: true, Context: ctx})
	session.Statement.ConnPool = raw

	m.open.Add(1)
	return &Conn{db: session, raw: raw, manager: m}, nil
}

// Release returns the connection to the pool. It is safe to call on a nil
// or already released connection.
func (m *ConnManager) Release(c *Conn) error {
	if c == nil || !c.released.CompareAndSwap(false, true) {
		return nil
	}
	m.open.Add(-1)
	return c.raw.Close()
}

// Open reports how many acquired connections have not been released yet.
func (m *ConnManager) Open() int64 {
	return m.open.Load()
}

// Accounts returns a repository bound to this connection, outside any transaction.
func (c *Conn) Accounts() AccountRepository {
	return &accountRepository{db: c.db}
}

// ExecuteInTransaction runs fn inside one transaction on this connection.
// The transaction commits when fn returns nil and rolls back otherwise.
func (c *Conn) ExecuteInTransaction(ctx context.Context, fn func(AccountRepository) error) error {
	if c.released.Load() {
		return ErrConnReleased
	}
	if !c.txMu.TryLock() {
		return ErrConnBusy
	}
	defer c.txMu.Unlock()

	return c.Accounts().ExecuteInTransaction(ctx, fn)
}

// Released reports whether the connection went back to the pool.
func (c *Conn) Released() bool {
	return c.released.Load()
}
