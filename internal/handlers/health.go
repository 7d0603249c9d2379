package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger checks that a backing service is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingerFunc adapts a function to Pinger.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

// HealthHandler reports the state of the database and the optional cache.
type HealthHandler struct {
	db    Pinger
	cache Pinger
}

// NewHealthHandler creates a HealthHandler. cache may be nil.
func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

const healthTimeout = 2 * time.Second

// Check handles GET /health requests.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
	defer cancel()

	status := fiber.StatusOK
	services := fiber.Map{"database": "connected", "cache": "disabled"}

	if err := h.db.PingContext(ctx); err != nil {
		status = fiber.StatusServiceUnavailable
		services["database"] = err.Error()
	}
	if h.cache != nil {
		if err := h.cache.PingContext(ctx); err != nil {
			// The ledger keeps serving from storage when the cache is down.
			services["cache"] = err.Error()
		} else {
			services["cache"] = "connected"
		}
	}

	state := "ok"
	if status != fiber.StatusOK {
		state = "degraded"
	}
	return c.Status(status).JSON(fiber.Map{
		"status":   state,
		"services": services,
	})
}
