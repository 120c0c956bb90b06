package middleware

import (
	"errors"
	"net/http"

	"finis-oculus/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ErrorHandler renders every unhandled error as {"error": message}.
// Internal errors are logged and reported with a generic message.
func ErrorHandler(log *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "Internal server error"

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(status)
			}
		}
		if status >= http.StatusInternalServerError {
			log.ErrorContext(c.Request().Context(), "Unhandled error", logger.ErrorField(err))
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, echo.Map{"error": message})
		}
		if writeErr != nil {
			log.ErrorContext(c.Request().Context(), "Failed to write error response", logger.ErrorField(writeErr))
		}
	}
}
