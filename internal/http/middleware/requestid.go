package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader is the standard header name used to propagate request IDs.
	RequestIDHeader = "X-Request-ID"
	// RequestIDLocalKey is the key used to store the request ID in Fiber's context locals.
	RequestIDLocalKey = "request_id"

	maxRequestIDLen = 128
)

// RequestID ensures every request carries an ID.
//
// Behavior:
// - Reads X-Request-ID from the incoming request header.
// - If missing or longer than 128 bytes, generates a new UUID.
// - Stores the value in Fiber context locals under RequestIDLocalKey.
// - Echoes it in the X-Request-ID response header.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// c.Get aliases the request buffer; copy before keeping it past the handler.
		id := string([]byte(c.Get(RequestIDHeader)))
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}

		c.Locals(RequestIDLocalKey, id)
		c.Set(RequestIDHeader, id)

		return c.Next()
	}
}
