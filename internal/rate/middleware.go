package rate

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Middleware caps requests per client address to limit per window. The scope
// string keeps counters for different route groups independent, so the strict
// auth window does not consume the general quota.
func Middleware(limiter Limiter, scope string, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := scope + ":" + c.RealIP()
			allowed, retryAfter := limiter.Allow(key, limit, window)
			if !allowed {
				c.Response().Header().Set("Retry-After", retryAfter.Truncate(time.Second).String())
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"status":  "error",
					"message": "Too many requests, please try again later.",
				})
			}
			return next(c)
		}
	}
}
