package middleware

import (
	"errors"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	"docstore/internal/logging"
)

// Logger is a middleware that logs each HTTP request as one JSON line on the
// process-wide logger. Fields:
// - request_id (taken from context locals set by RequestID middleware)
// - method
// - path
// - status
// - latency (in milliseconds, as float)
// - ts
func Logger() fiber.Handler {
	return logRequests(logging.Default())
}

// LoggerWithWriter is Logger writing to w with timestamps in loc.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	return logRequests(logging.New(w, loc))
}

func logRequests(log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		rid, _ := c.Locals(RequestIDLocalKey).(string)
		status := statusOf(c, err)
		entry := map[string]any{
			"component":  "http",
			"request_id": rid,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"latency":    float64(time.Since(start).Microseconds()) / 1000,
		}
		if status >= fiber.StatusInternalServerError {
			entry["level"] = "error"
		}
		log.Log(entry)

		return err
	}
}

// statusOf is the status the client will see. Errors returned down the chain
// are only rendered later by the app's ErrorHandler.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
