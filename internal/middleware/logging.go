package middleware

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
)

// Logging emits one line per request with method, status and latency.
// Slow upstream fan-outs on the search endpoint show up here first.
func Logging() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			latency := time.Since(start)

			if err != nil {
				c.Error(err)
			}

			rid, _ := c.Get(ContextKeyRequestID).(string)
			log.Printf("method=%s path=%s status=%d latency=%s request_id=%s", c.Request().Method, c.Request().URL.Path, c.Response().Status, latency, rid)

			return err
		}
	}
}
