package http

import (
	"errors"
	"fmt"
	"net/http"

	"finis-oculus/internal/api/service"
	"finis-oculus/pkg/logger"

	"github.com/labstack/echo/v4"
)

// respondError maps service errors to statuses. Unknown errors get a
// generic message; their detail is logged.
func respondError(c echo.Context, log *logger.Logger, err error, ticker string) error {
	switch {
	case errors.Is(err, service.ErrStockNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": fmt.Sprintf("Stock data not found for %s", ticker)})
	case errors.Is(err, service.ErrInvalidTicker):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid ticker symbol"})
	case errors.Is(err, service.ErrPlanLimitReached):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Free plan watchlist limit reached. Upgrade to premium for unlimited tickers."})
	case errors.Is(err, service.ErrTooManyTickers):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Too many tickers in one request"})
	default:
		log.ErrorContext(c.Request().Context(), "Request failed", logger.ErrorField(err), logger.StringField("ticker", ticker))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch stock data"})
	}
}
