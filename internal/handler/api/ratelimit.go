package api

import (
	"LipeCore/internal/service/ratelimit"
	xhttp "LipeCore/pkg/http"
	xlogger "LipeCore/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RateLimit rejects requests once the client IP's bucket is empty.
func RateLimit(l *ratelimit.Limiter, logger *xlogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !l.Enabled() {
				return next(c)
			}
			ip := c.RealIP()
			if !l.Allow(ip) {
				logger.Warn("rate limited", xlogger.String("remote", ip), xlogger.String("path", c.Path()))
				return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("rate limited"))
			}
			return next(c)
		}
	}
}
