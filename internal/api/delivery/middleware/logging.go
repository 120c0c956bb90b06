package middleware

import (
	"time"

	"finis-oculus/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestLogger logs one line per request and tags the request context
// with its request id so downstream logs carry it.
func RequestLogger(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			requestID := c.Response().Header().Get(echo.HeaderXRequestID)
			if requestID != "" {
				c.SetRequest(req.WithContext(logger.WithRequestID(req.Context(), requestID)))
			}

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			fields := []zap.Field{
				logger.StringField("method", req.Method),
				logger.StringField("path", req.URL.Path),
				logger.IntField("status", c.Response().Status),
				logger.Field("latency", time.Since(start)),
				logger.StringField("remote_ip", c.RealIP()),
			}
			if err != nil {
				fields = append(fields, logger.ErrorField(err))
			}

			ctx := c.Request().Context()
			switch status := c.Response().Status; {
			case status >= 500:
				log.ErrorContext(ctx, "HTTP request", fields...)
			case status >= 400:
				log.WarnContext(ctx, "HTTP request", fields...)
			default:
				log.InfoContext(ctx, "HTTP request", fields...)
			}
			return nil
		}
	}
}
