package service

import (
	"errors"
	"fmt"

	"finis-oculus/internal/api/repository"
)

var (
	// ErrStockNotFound means the provider has no data for the ticker.
	ErrStockNotFound = errors.New("stock data not found")
	// ErrInvalidTicker means the ticker is missing or malformed.
	ErrInvalidTicker = errors.New("invalid ticker symbol")
	// ErrPlanLimitReached means a non-premium watchlist is full.
	ErrPlanLimitReached = errors.New("watchlist plan limit reached")
	// ErrTooManyTickers means a details batch exceeds the accepted size.
	ErrTooManyTickers = errors.New("too many tickers in one request")
)

// providerError translates provider failures into service errors.
func providerError(ticker string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w for %s", ErrStockNotFound, ticker)
	}
	return fmt.Errorf("failed to fetch market data for %s: %w", ticker, err)
}
