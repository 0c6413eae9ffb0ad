package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	fiberutils "github.com/gofiber/utils/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AccessLog writes one structured line per request. Paths listed in skip
// (health probes, metrics scrapes) are not logged. Request strings are copied
// out of the fasthttp buffer because cores may hold fields past the handler.
func AccessLog(log *zap.Logger, skip ...string) fiber.Handler {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}

	return func(c fiber.Ctx) error {
		if _, ok := skipped[c.Path()]; ok {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()

		level := zapcore.InfoLevel
		switch {
		case status >= fiber.StatusInternalServerError:
			level = zapcore.ErrorLevel
		case status >= fiber.StatusBadRequest:
			level = zapcore.WarnLevel
		}

		if ce := log.Check(level, "request"); ce != nil {
			ce.Write(
				zap.String("request_id", fiberutils.CopyString(requestid.FromContext(c))),
				zap.String("method", fiberutils.CopyString(c.Method())),
				zap.String("path", fiberutils.CopyString(c.Path())),
				zap.Int("status", status),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", fiberutils.CopyString(c.IP())),
				zap.String("user_agent", fiberutils.CopyString(c.Get("User-Agent"))),
				zap.Int("bytes_out", len(c.Response().Body())),
			)
		}
		return err
	}
}
