package routes

import (
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"fundsledger/internal/handlers"
	"fundsledger/internal/metrics"
	"fundsledger/internal/repositories"
	"fundsledger/internal/services/ledger"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSetupRoutes(t *testing.T) {
	db := repositories.CreateTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	conns := repositories.NewConnManager(db)
	reg := prometheus.NewRegistry()
	collector := metrics.New(reg)
	metrics.RegisterDatabase(reg, sqlDB, conns.Open)

	alice := repositories.SeedAccount(t, db, "Alice", "100")
	bob := repositories.SeedAccount(t, db, "Bob", "10")

	app := fiber.New()
	SetupRoutes(app, Dependencies{
		Ledger:  ledger.NewService(nil, ledger.LedgerConfig{}, collector),
		Conns:   conns,
		Health:  handlers.NewHealthHandler(sqlDB, nil),
		Metrics: reg,
		Logger:  zap.NewNop(),
	})

	get := func(path string) (int, string) {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil), -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, string(b)
	}

	status, _ := get("/health")
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = get("/api/accounts")
	assert.Equal(t, fiber.StatusOK, status)

	payload := `{"from_id":` + strconv.Itoa(int(alice.ID)) + `,"to_id":` + strconv.Itoa(int(bob.ID)) + `,"amount":"40"}`
	req := httptest.NewRequest("POST", "/api/transfers", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, int64(0), conns.Open(), "every request releases its connection")

	status, body := get("/metrics")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, `ledger_transfers_total{reason="",status="committed"} 1`)
	assert.Contains(t, body, "ledger_request_connections_open 0")
}
