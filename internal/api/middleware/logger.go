// Package middleware provides HTTP middleware for the API
package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/studyhub-dev/studyhub/internal/logger"
)

// RequestIDKey is the locals key holding the per-request ID
const RequestIDKey = "request_id"

// Logger returns a middleware that tags each request with an ID and logs it
func Logger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := uuid.NewString()
		c.Locals(RequestIDKey, requestID)

		err := c.Next()

		logger.InfoWithFields("Request", map[string]interface{}{
			"request_id": requestID,
			"status":     c.Response().StatusCode(),
			"latency":    time.Since(start).String(),
			"ip":         c.IP(),
			"method":     c.Method(),
			"path":       c.Path(),
			"handler":    c.Route().Name,
		})

		return err
	}
}
