package response

import (
	apperrors "fundsledger/internal/errors"

	"github.com/gofiber/fiber/v2"
)

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// Domain writes a DomainError with its own status and code.
func Domain(c *fiber.Ctx, err *apperrors.DomainError, data interface{}) error {
	body := fiber.Map{
		"error": err.Message,
		"code":  err.Code,
	}
	if data != nil {
		body["data"] = data
	}
	return c.Status(err.Status).JSON(body)
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

// ValidationError rejects a well-formed body whose fields are missing or out
// of range, before it reaches the ledger.
func ValidationError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": message,
		"code":  "VALIDATION_ERROR",
	})
}
