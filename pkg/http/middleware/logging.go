package middleware

import (
	"time"

	applogger "LipeCore/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RequestLogging writes one line per request. Health probes log at debug.
func RequestLogging(l *applogger.Logger) echo.MiddlewareFunc {
	if l == nil {
		l = applogger.Nop()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			req := c.Request()
			fields := []applogger.Field{
				applogger.String("method", req.Method),
				applogger.String("uri", req.RequestURI),
				applogger.String("remote", c.RealIP()),
				applogger.String("tenant", req.Header.Get("x-tenant-id")),
				applogger.Int("status", c.Response().Status),
				applogger.Duration("latency_ms", time.Since(start)),
			}
			if c.Path() == "/healthz" {
				l.Debug("http request", fields...)
			} else {
				l.Info("http request", fields...)
			}
			return err
		}
	}
}
