// Package middleware provides HTTP middleware components for the application.
package middleware

import (
	"context"

	"fundsledger/internal/repositories"
	"fundsledger/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const connLocalsKey = "ledger_conn"

// ConnManager is the part of repositories.ConnManager the middleware needs.
type ConnManager interface {
	Acquire(ctx context.Context) (*repositories.Conn, error)
	Release(conn *repositories.Conn) error
}

// RequestConnection acquires one storage connection when a request starts
// and releases it when the request ends, whatever the handler did.
func RequestConnection(conns ConnManager, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		conn, err := conns.Acquire(c.UserContext())
		if err != nil {
			log.Error("failed to acquire connection", zap.String("path", c.Path()), zap.Error(err))
			return response.Error(c, fiber.StatusServiceUnavailable, "storage unavailable")
		}
		defer func() {
			if err := conns.Release(conn); err != nil {
				log.Warn("failed to release connection", zap.String("path", c.Path()), zap.Error(err))
			}
		}()

		c.Locals(connLocalsKey, conn)
		return c.Next()
	}
}

// Conn returns the connection acquired for this request.
func Conn(c *fiber.Ctx) (*repositories.Conn, bool) {
	conn, ok := c.Locals(connLocalsKey).(*repositories.Conn)
	return conn, ok && conn != nil
}
