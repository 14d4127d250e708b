// Package middleware holds the request-scoped Fiber middleware.
package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/logger"
)

const requestIDLocal = "requestid"

// RequestID assigns an X-Request-ID (or keeps the caller's) and stores it in
// locals; Logger moves it into the user context for slog and error bodies.
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		Generator:  uuid.NewString,
		ContextKey: requestIDLocal,
	})
}

// propagate copies the request id from locals into the user context.
func propagate(c *fiber.Ctx) string {
	id, _ := c.Locals(requestIDLocal).(string)
	if id != "" {
		c.SetUserContext(logger.WithRequestID(c.UserContext(), id))
	}
	return id
}

// Logger logs each request once it completes, with level by status class.
func Logger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		propagate(c)
		ctx := c.UserContext()

		chainErr := c.Next()
		if chainErr != nil {
			// let the app's ErrorHandler write the body so the status is final
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		attrs := []any{
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", c.IP(),
		}
		switch {
		case status >= 500:
			slog.ErrorContext(ctx, "request failed with server error", attrs...)
		case status >= 400:
			slog.WarnContext(ctx, "request failed with client error", attrs...)
		default:
			slog.InfoContext(ctx, "request completed", attrs...)
		}
		return nil
	}
}

// Recover turns panics into 500 responses and logs them with the request id.
func Recover() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e any) {
			slog.ErrorContext(c.UserContext(), "panic recovered",
				"error", e,
				"path", c.Path())
		},
	})
}
