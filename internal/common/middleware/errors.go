package middleware

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v3"
)

// ErrorHandler renders unhandled errors, including recovered panics, as
// {"error": "..."} bodies.
func ErrorHandler(logger *log.Logger) fiber.ErrorHandler {
	return func(c fiber.Ctx, err error) error {
		code := http.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code >= http.StatusInternalServerError {
			logger.Error("unhandled error", "method", c.Method(), "path", c.Path(), "err", err)
		}
		return c.Status(code).JSON(fiber.Map{"error": err.Error()})
	}
}
