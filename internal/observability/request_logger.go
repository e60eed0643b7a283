package observability

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger records method, path, remote address, elapsed time and the
// final status code around every request. It runs outermost, so the status it
// sees is the one written after error handling.
func RequestLogger(logger *zap.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		elapsed := time.Since(start)
		status := c.Response().StatusCode()

		logger.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("remote_addr", c.IP()),
			zap.Int("status", status),
			zap.Duration("elapsed", elapsed),
		)
		metrics.RecordRequest(c.Path(), c.Method(), status, elapsed)
		return err
	}
}
