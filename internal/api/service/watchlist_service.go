package service

import (
	"context"
	"errors"
	"fmt"

	"finis-oculus/internal/api/config"
	"finis-oculus/internal/api/dto"
	"finis-oculus/internal/api/repository"
	"finis-oculus/pkg/common"
	"finis-oculus/pkg/logger"
	"finis-oculus/pkg/utils"

	"golang.org/x/sync/errgroup"
)

// WatchlistService manages per-user watchlists and their market snapshots.
type WatchlistService interface {
	List(ctx context.Context, userID string) (*dto.WatchlistResponse, error)
	Add(ctx context.Context, userID, ticker string) error
	Remove(ctx context.Context, userID, ticker string) error
	Details(ctx context.Context, tickers []string) ([]dto.StockSnapshot, error)
}

type watchlistService struct {
	cfg           *config.Config
	log           *logger.Logger
	watchlistRepo repository.WatchlistRepository
	profileRepo   repository.ProfileRepository
	sentimentRepo repository.SentimentRepository
	market        MarketService
}

// NewWatchlistService creates a new WatchlistService.
func NewWatchlistService(
	cfg *config.Config,
	log *logger.Logger,
	watchlistRepo repository.WatchlistRepository,
	profileRepo repository.ProfileRepository,
	sentimentRepo repository.SentimentRepository,
	market MarketService,
) WatchlistService {
	return &watchlistService{
		cfg:           cfg,
		log:           log,
		watchlistRepo: watchlistRepo,
		profileRepo:   profileRepo,
		sentimentRepo: sentimentRepo,
		market:        market,
	}
}

func (s *watchlistService) List(ctx context.Context, userID string) (*dto.WatchlistResponse, error) {
	tickers, err := s.watchlistRepo.List(ctx, userID)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to list watchlist", logger.ErrorField(err), logger.StringField("user_id", userID))
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}
	if tickers == nil {
		tickers = []string{}
	}
	return &dto.WatchlistResponse{Tickers: tickers}, nil
}

// Add validates ticker against the provider and stores it, enforcing the
// plan cap for non-premium accounts. Adding a present ticker is a no-op.
func (s *watchlistService) Add(ctx context.Context, userID, ticker string) error {
	ticker = utils.NormalizeTicker(ticker)
	if !utils.IsValidTicker(ticker) {
		return ErrInvalidTicker
	}
	if err := s.market.ValidateTicker(ctx, ticker); err != nil {
		return err
	}

	profile, err := s.profileRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	err = s.watchlistRepo.AddWithinLimit(ctx, userID, ticker, WatchlistLimit(s.cfg, profile.Premium))
	if errors.Is(err, repository.ErrLimitReached) {
		return ErrPlanLimitReached
	}
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to add watchlist ticker", logger.ErrorField(err), logger.StringField("ticker", ticker))
		return fmt.Errorf("failed to add ticker: %w", err)
	}
	return nil
}

// Remove deletes ticker from the watchlist. Removing an absent ticker
// succeeds.
func (s *watchlistService) Remove(ctx context.Context, userID, ticker string) error {
	ticker = utils.NormalizeTicker(ticker)
	if !utils.IsValidTicker(ticker) {
		return ErrInvalidTicker
	}
	if err := s.watchlistRepo.Remove(ctx, userID, ticker); err != nil {
		s.log.ErrorContext(ctx, "Failed to remove watchlist ticker", logger.ErrorField(err), logger.StringField("ticker", ticker))
		return fmt.Errorf("failed to remove ticker: %w", err)
	}
	return nil
}

// Details returns one snapshot per distinct ticker, in request order.
// Any failing ticker fails the batch.
func (s *watchlistService) Details(ctx context.Context, tickers []string) ([]dto.StockSnapshot, error) {
	if len(tickers) == 0 {
		return []dto.StockSnapshot{}, nil
	}
	if len(tickers) > common.MaxDetailsBatch {
		return nil, ErrTooManyTickers
	}

	seen := make(map[string]struct{}, len(tickers))
	unique := make([]string, 0, len(tickers))
	for _, t := range tickers {
		t = utils.NormalizeTicker(t)
		if !utils.IsValidTicker(t) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTicker, t)
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		unique = append(unique, t)
	}

	scores, err := s.sentimentRepo.GetByTickers(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("failed to read sentiment: %w", err)
	}

	snapshots := make([]dto.StockSnapshot, len(unique))
	g, gctx := errgroup.WithContext(ctx)
	if n := s.cfg.Watchlist.DetailsConcurrency; n > 0 {
		g.SetLimit(n)
	}
	for i, ticker := range unique {
		var score *float64
		if v, ok := scores[ticker]; ok {
			score = &v
		}
		g.Go(func() error {
			snap, err := s.market.GetSnapshot(gctx, ticker, score)
			if err != nil {
				return err
			}
			snapshots[i] = *snap
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.log.ErrorContext(ctx, "Failed to fetch watchlist details", logger.ErrorField(err), logger.IntField("tickers", len(unique)))
		return nil, err
	}
	return snapshots, nil
}

// WatchlistLimit is the watchlist cap for an account; 0 means unlimited.
func WatchlistLimit(cfg *config.Config, premium bool) int {
	if premium {
		return 0
	}
	if cfg.Watchlist.FreeLimit > 0 {
		return cfg.Watchlist.FreeLimit
	}
	return common.FreeWatchlistLimit
}
