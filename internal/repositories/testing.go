package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"fundsledger/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// CreateTestDB returns a migrated sqlite database in a temporary directory.
// It is closed automatically when the test finishes.
func CreateTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ledger.db")
	db, err := gorm.Open(sqlite.Open(path+sqliteParams), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	t.Cleanup(func() {
		if err := Close(db); err != nil {
			t.Logf("close sqlite: %v", err)
		}
	})
	return db
}

// CreatePostgresTestDB connects to the postgres database in TEST_POSTGRES_DSN,
// migrates it and empties the ledger tables. The test is skipped when the
// variable is unset.
func CreatePostgresTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate postgres: %v", err)
	}
	if err := db.Exec("TRUNCATE TABLE transfers, accounts RESTART IDENTITY").Error; err != nil {
		t.Fatalf("truncate postgres: %v", err)
	}
	t.Cleanup(func() {
		if err := Close(db); err != nil {
			t.Logf("close postgres: %v", err)
		}
	})
	return db
}

// SeedAccount inserts an account with the given balance and returns it.
func SeedAccount(t testing.TB, db *gorm.DB, name, balance string) *models.Account {
	t.Helper()

	account := &models.Account{Name: name, Balance: decimal.RequireFromString(balance)}
	if err := NewAccountRepository(db).Create(context.Background(), account); err != nil {
		t.Fatalf("seed account %s: %v", name, err)
	}
	return account
}
