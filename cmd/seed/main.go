package main

import (
	"context"
	"log"

	"fundsledger/internal/config"
	"fundsledger/internal/logging"
	"fundsledger/internal/models"
	"fundsledger/internal/repositories"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var demoAccounts = []struct {
	name    string
	balance string
}{
	{"Alice", "100.00"},
	{"Bob", "50.00"},
	{"Carol", "250.00"},
	{"Dave", "0.00"},
}

func main() {
	config.LoadEnv()
	cfg := config.Load()

	logger, err := logging.New(cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	db, err := repositories.Open(cfg, logging.GormLogger(logger))
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer func() {
		if err := repositories.Close(db); err != nil {
			logger.Warn("failed to close database", zap.Error(err))
		}
	}()

	ctx := context.Background()
	accounts := repositories.NewAccountRepository(db)

	count, err := accounts.Count(ctx)
	if err != nil {
		logger.Fatal("failed to count accounts", zap.Error(err))
	}
	if count > 0 {
		logger.Info("accounts already exist, nothing to seed", zap.Int64("count", count))
		return
	}

	for _, a := range demoAccounts {
		account := &models.Account{Name: a.name, Balance: decimal.RequireFromString(a.balance)}
		if err := accounts.Create(ctx, account); err != nil {
			logger.Fatal("failed to create account", zap.String("name", a.name), zap.Error(err))
		}
		logger.Info("account created", zap.Uint("id", account.ID), zap.String("details", account.Details()))
	}
}
