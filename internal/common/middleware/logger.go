package middleware

import (
	"io"
	"os"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

// ============================================================
// Logger Middleware
// ============================================================

// Logger writes one access line per request to stderr.
func Logger() fiber.Handler {
	return LoggerTo(os.Stderr)
}

func LoggerTo(w io.Writer) fiber.Handler {
	return logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path} | ${bytesSent}B\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
		Stream:     w,
	})
}
