package service

import "errors"

var (
	// ErrNoSession means no user is signed in.
	ErrNoSession = errors.New("no signed-in session")
	// ErrDuplicate means the ticker is already on the watchlist.
	ErrDuplicate = errors.New("ticker already in watchlist")
	// ErrPlanLimit means a non-premium watchlist is full.
	ErrPlanLimit = errors.New("watchlist plan limit reached")
	// ErrInvalidSymbol means the ticker is malformed or unknown to the provider.
	ErrInvalidSymbol = errors.New("invalid ticker symbol")
	// ErrBackendWrite means the watchlist store rejected a change.
	ErrBackendWrite = errors.New("watchlist update failed")
	// ErrFetch means the watchlist or its market data could not be loaded.
	ErrFetch = errors.New("watchlist fetch failed")
)
