package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"finis-oculus/internal/auth"
	"finis-oculus/internal/dashboard/dto"
	"finis-oculus/internal/dashboard/repository"
	"finis-oculus/pkg/common"
	"finis-oculus/pkg/logger"
	"finis-oculus/pkg/utils"
)

// Notifier reports a failed user action.
type Notifier interface {
	Notify(ctx context.Context, title, message string) error
}

// Board keeps the rendered watchlist cards consistent with the stored
// watchlist. The watchlist is authoritative: cards are replaced wholesale
// on every successful refresh and left untouched when one fails.
// AddTicker loads the watchlist first when no refresh has succeeded yet,
// so its duplicate and plan limit checks never run against an empty set.
type Board interface {
	Refresh(ctx context.Context) error
	AddTicker(ctx context.Context, symbol string) error
	RemoveTicker(ctx context.Context, symbol string) error
	Cards() []dto.Card
	Tickers() []string
}

type board struct {
	mu       sync.Mutex
	api      repository.APIRepository
	session  *auth.SessionHolder
	notifier Notifier
	log      *logger.Logger

	cards   []dto.Card
	tickers []string
	loaded  bool
}

// NewBoard creates a Board reading the identity from session.
func NewBoard(api repository.APIRepository, session *auth.SessionHolder, notifier Notifier, log *logger.Logger) Board {
	return &board{
		api:      api,
		session:  session,
		notifier: notifier,
		log:      log,
	}
}

func (b *board) Refresh(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := b.session.Current()
	if s == nil {
		return ErrNoSession
	}
	return b.refresh(ctx, s)
}

// refresh reloads the ticker set and its snapshots. Callers hold b.mu.
func (b *board) refresh(ctx context.Context, s *auth.Session) error {
	tickers, err := b.api.ListWatchlist(ctx, s.Token)
	if err != nil {
		return b.fail(ctx, fmt.Errorf("%w: %w", ErrFetch, err), "Could not load your watchlist. Please try again.")
	}

	if len(tickers) == 0 {
		b.cards = nil
		b.tickers = nil
		b.loaded = true
		return nil
	}

	snapshots, err := b.api.WatchlistDetails(ctx, s.Token, tickers)
	if err != nil {
		return b.fail(ctx, fmt.Errorf("%w: %w", ErrFetch, err), "Could not load market data for your watchlist. Please try again.")
	}

	cards := make([]dto.Card, 0, len(snapshots))
	for _, snap := range snapshots {
		cards = append(cards, ToCard(snap))
	}
	b.cards = cards
	b.tickers = tickers
	b.loaded = true
	return nil
}

func (b *board) AddTicker(ctx context.Context, symbol string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := b.session.Current()
	if s == nil {
		return ErrNoSession
	}

	ticker := utils.NormalizeTicker(symbol)
	if !utils.IsValidTicker(ticker) {
		return b.fail(ctx, ErrInvalidSymbol, fmt.Sprintf("%q is not a valid ticker symbol.", symbol))
	}
	if !b.loaded {
		if err := b.refresh(ctx, s); err != nil {
			return err
		}
	}
	if b.has(ticker) {
		return b.fail(ctx, ErrDuplicate, fmt.Sprintf("%s is already in your watchlist.", ticker))
	}
	if !s.Premium && len(b.tickers) >= common.FreeWatchlistLimit {
		return b.fail(ctx, ErrPlanLimit, planLimitMessage())
	}

	if err := b.api.ValidateTicker(ctx, s.Token, ticker); err != nil {
		if unknownSymbol(err) {
			return b.fail(ctx, fmt.Errorf("%w: %w", ErrInvalidSymbol, err), fmt.Sprintf("%s was not found. Check the symbol and try again.", ticker))
		}
		return b.fail(ctx, fmt.Errorf("%w: %w", ErrFetch, err), fmt.Sprintf("Could not reach the server to check %s. Please try again.", ticker))
	}

	if err := b.api.AddTicker(ctx, s.Token, ticker); err != nil {
		var statusErr *repository.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusForbidden {
			return b.fail(ctx, fmt.Errorf("%w: %w", ErrPlanLimit, err), planLimitMessage())
		}
		return b.fail(ctx, fmt.Errorf("%w: %w", ErrBackendWrite, err), fmt.Sprintf("Could not add %s to your watchlist. Please try again.", ticker))
	}

	return b.refresh(ctx, s)
}

func (b *board) RemoveTicker(ctx context.Context, symbol string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := b.session.Current()
	if s == nil {
		return ErrNoSession
	}

	ticker := utils.NormalizeTicker(symbol)
	if !utils.IsValidTicker(ticker) {
		return b.fail(ctx, ErrInvalidSymbol, fmt.Sprintf("%q is not a valid ticker symbol.", symbol))
	}

	if err := b.api.RemoveTicker(ctx, s.Token, ticker); err != nil {
		return b.fail(ctx, fmt.Errorf("%w: %w", ErrBackendWrite, err), fmt.Sprintf("Could not remove %s from your watchlist. Please try again.", ticker))
	}

	return b.refresh(ctx, s)
}

func (b *board) Cards() []dto.Card {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]dto.Card(nil), b.cards...)
}

func (b *board) Tickers() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.tickers...)
}

func (b *board) has(ticker string) bool {
	for _, t := range b.tickers {
		if t == ticker {
			return true
		}
	}
	return false
}

// fail reports err to the user once and returns it.
func (b *board) fail(ctx context.Context, err error, message string) error {
	b.log.WarnContext(ctx, "Watchlist action failed", logger.ErrorField(err))
	if nerr := b.notifier.Notify(ctx, "Watchlist", message); nerr != nil {
		b.log.ErrorContext(ctx, "Failed to send notification", logger.ErrorField(nerr))
	}
	return err
}

// unknownSymbol reports whether a validation failure is the server's
// answer about the symbol rather than a failure to get an answer.
func unknownSymbol(err error) bool {
	if errors.Is(err, repository.ErrNotFound) {
		return true
	}
	var statusErr *repository.StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusBadRequest
}

func planLimitMessage() string {
	return fmt.Sprintf("Free plan watchlists are limited to %d tickers. Upgrade to premium for unlimited tickers.", common.FreeWatchlistLimit)
}
