package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

const requestLogFormat = "${locals:requestid} ${status} - ${latency} ${method} ${path}\n"

// RequestLogger is fiber's access logger writing one zap entry per request.
func RequestLogger(l *zap.Logger) fiber.Handler {
	return logger.New(logger.Config{
		Format:        requestLogFormat,
		Output:        zap.NewStdLog(l.Named("http")).Writer(),
		DisableColors: true,
	})
}
