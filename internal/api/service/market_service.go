package service

import (
	"context"
	"fmt"
	"time"

	"finis-oculus/internal/api/config"
	"finis-oculus/internal/api/dto"
	"finis-oculus/internal/api/repository"
	"finis-oculus/pkg/common"
	"finis-oculus/pkg/logger"
	"finis-oculus/pkg/utils"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
)

const (
	newsPageSize     = 10
	detailNewsCount  = 5
	newsFilterNews   = "news"
	newsFilterFiling = "filings"
)

// MarketService shapes provider data into the views the clients render.
type MarketService interface {
	GetChart(ctx context.Context, ticker, rng string) (*dto.ChartResponse, error)
	GetStockDetail(ctx context.Context, ticker string) (*dto.StockDetailResponse, error)
	GetNews(ctx context.Context, ticker string, page int, filter string) (*dto.NewsResponse, error)
	ValidateTicker(ctx context.Context, ticker string) error
	GetSnapshot(ctx context.Context, ticker string, sentimentScore *float64) (*dto.StockSnapshot, error)
}

type marketService struct {
	log             *logger.Logger
	yahoo           repository.YahooFinanceRepository
	news            repository.NewsRepository
	sentimentRepo   repository.SentimentRepository
	summaryRepo     repository.AISummaryRepository
	validationCache *cache.Cache
	now             func() time.Time
}

// NewMarketService creates a new MarketService. summaryRepo may be nil,
// in which case AI summaries are reported as not computed.
func NewMarketService(
	cfg *config.Config,
	log *logger.Logger,
	yahoo repository.YahooFinanceRepository,
	news repository.NewsRepository,
	sentimentRepo repository.SentimentRepository,
	summaryRepo repository.AISummaryRepository,
) MarketService {
	ttl := cfg.Watchlist.ValidationCacheTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &marketService{
		log:             log,
		yahoo:           yahoo,
		news:            news,
		sentimentRepo:   sentimentRepo,
		summaryRepo:     summaryRepo,
		validationCache: cache.New(ttl, 2*ttl),
		now:             time.Now,
	}
}

// GetChart fetches the historical series and the current quote
// concurrently; either failing fails the request.
func (s *marketService) GetChart(ctx context.Context, ticker, rng string) (*dto.ChartResponse, error) {
	ticker = utils.NormalizeTicker(ticker)
	if !utils.IsValidTicker(ticker) {
		return nil, ErrInvalidTicker
	}

	opts := ChartOptionsFor(rng, s.now())

	var (
		series *dto.ChartSeries
		quote  *dto.YahooQuote
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		series, err = s.yahoo.GetChart(gctx, dto.GetChartParam{
			Ticker:   ticker,
			Start:    opts.Start,
			End:      s.now(),
			Interval: opts.Interval,
		})
		return err
	})
	g.Go(func() error {
		var err error
		quote, err = s.yahoo.GetQuote(gctx, ticker)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.ErrorContext(ctx, "Failed to fetch chart data", logger.ErrorField(err), logger.StringField("ticker", ticker), logger.StringField("range", rng))
		return nil, providerError(ticker, err)
	}
	if quote.RegularMarketPrice == nil || *quote.RegularMarketPrice == 0 {
		return nil, fmt.Errorf("%w for %s", ErrStockNotFound, ticker)
	}

	change, percent := quoteChange(quote)
	return &dto.ChartResponse{
		PriceHistory: BuildPriceHistory(series, rng),
		Price:        *quote.RegularMarketPrice,
		Change:       FormatChange(change, percent),
		ChangeType:   ChangeType(change),
	}, nil
}

// GetStockDetail joins quote, six months of daily history, recent news and
// the stored sentiment score, all-or-nothing.
func (s *marketService) GetStockDetail(ctx context.Context, ticker string) (*dto.StockDetailResponse, error) {
	ticker = utils.NormalizeTicker(ticker)
	if !utils.IsValidTicker(ticker) {
		return nil, ErrInvalidTicker
	}

	opts := ChartOptionsFor(common.Range6M, s.now())

	var (
		quote    *dto.YahooQuote
		series   *dto.ChartSeries
		articles []dto.NewsArticle
		score    *float64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		quote, err = s.yahoo.GetQuote(gctx, ticker)
		return err
	})
	g.Go(func() error {
		var err error
		series, err = s.yahoo.GetChart(gctx, dto.GetChartParam{
			Ticker:   ticker,
			Start:    opts.Start,
			End:      s.now(),
			Interval: opts.Interval,
		})
		return err
	})
	g.Go(func() error {
		var err error
		articles, err = s.news.GetNews(gctx, dto.SearchNewsParam{
			Ticker: ticker,
			Count:  detailNewsCount,
			Types:  newsTypes("all"),
		})
		return err
	})
	g.Go(func() error {
		record, err := s.sentimentRepo.GetByTicker(gctx, ticker)
		if err != nil {
			return fmt.Errorf("failed to read sentiment: %w", err)
		}
		if record != nil {
			score = &record.Score
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.log.ErrorContext(ctx, "Failed to fetch stock detail", logger.ErrorField(err), logger.StringField("ticker", ticker))
		return nil, providerError(ticker, err)
	}
	if quote.RegularMarketPrice == nil || *quote.RegularMarketPrice == 0 {
		return nil, fmt.Errorf("%w for %s", ErrStockNotFound, ticker)
	}

	change, percent := quoteChange(quote)
	name := displayName(quote, ticker)
	sentiment := NewSentiment(score)
	news := toNewsItems(articles)

	detail := &dto.StockDetailResponse{
		Ticker:              ticker,
		Name:                name,
		Price:               *quote.RegularMarketPrice,
		PreviousClose:       quote.RegularMarketPreviousClose,
		Change:              FormatChange(change, percent),
		ChangeType:          ChangeType(change),
		PriceHistory:        BuildPriceHistory(series, common.Range6M),
		Sentiment:           sentiment,
		RecentNews:          news,
		KeyStats:            keyStats(quote),
		AIInsights:          dto.AISummary{Status: common.StatusNotComputed},
		FinancialRatios:     financialRatios(quote),
		TechnicalIndicators: technicalIndicators(quote),
	}

	headlines := make([]string, 0, len(news))
	for _, n := range news {
		headlines = append(headlines, n.Headline)
	}
	detail.AISummary = s.summarize(ctx, repository.SummaryInput{
		Ticker:         ticker,
		Name:           name,
		Change:         detail.Change,
		SentimentScore: sentiment.Score,
		SentimentLabel: sentiment.Label,
		Headlines:      headlines,
	})

	return detail, nil
}

func (s *marketService) summarize(ctx context.Context, input repository.SummaryInput) dto.AISummary {
	if s.summaryRepo == nil {
		return dto.AISummary{Status: common.StatusNotComputed}
	}
	text, err := s.summaryRepo.Summarize(ctx, input)
	if err != nil {
		s.log.WarnContext(ctx, "AI summary unavailable", logger.ErrorField(err), logger.StringField("ticker", input.Ticker))
		return dto.AISummary{Status: common.StatusUnavailable}
	}
	return dto.AISummary{Status: common.StatusReady, Text: text}
}

// GetNews returns one page of news. Pages start at 1.
func (s *marketService) GetNews(ctx context.Context, ticker string, page int, filter string) (*dto.NewsResponse, error) {
	ticker = utils.NormalizeTicker(ticker)
	if !utils.IsValidTicker(ticker) {
		return nil, ErrInvalidTicker
	}
	if page < 1 {
		page = 1
	}

	articles, err := s.news.GetNews(ctx, dto.SearchNewsParam{
		Ticker: ticker,
		Count:  newsPageSize,
		Offset: (page - 1) * newsPageSize,
		Types:  newsTypes(filter),
	})
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to fetch news", logger.ErrorField(err), logger.StringField("ticker", ticker))
		return nil, providerError(ticker, err)
	}

	items := toNewsItems(articles)
	hasMore := len(items) == newsPageSize
	nextPage := page
	if hasMore {
		nextPage = page + 1
	}
	return &dto.NewsResponse{News: items, HasMore: hasMore, NextPage: nextPage}, nil
}

// ValidateTicker checks that the provider quotes a live price for ticker.
// Positive results are cached; any provider failure counts as not found.
func (s *marketService) ValidateTicker(ctx context.Context, ticker string) error {
	ticker = utils.NormalizeTicker(ticker)
	if !utils.IsValidTicker(ticker) {
		return ErrInvalidTicker
	}
	if _, ok := s.validationCache.Get(ticker); ok {
		return nil
	}

	quote, err := s.yahoo.GetQuote(ctx, ticker)
	if err != nil {
		s.log.DebugContext(ctx, "Ticker validation failed", logger.ErrorField(err), logger.StringField("ticker", ticker))
		return providerError(ticker, err)
	}
	if quote.RegularMarketPrice == nil || *quote.RegularMarketPrice == 0 {
		return fmt.Errorf("%w for %s", ErrStockNotFound, ticker)
	}

	s.validationCache.SetDefault(ticker, struct{}{})
	return nil
}

// GetSnapshot builds the watchlist card data for one ticker from its quote
// and today's intraday series.
func (s *marketService) GetSnapshot(ctx context.Context, ticker string, sentimentScore *float64) (*dto.StockSnapshot, error) {
	opts := ChartOptionsFor(common.Range1D, s.now())

	var (
		quote  *dto.YahooQuote
		series *dto.ChartSeries
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		quote, err = s.yahoo.GetQuote(gctx, ticker)
		return err
	})
	g.Go(func() error {
		var err error
		series, err = s.yahoo.GetChart(gctx, dto.GetChartParam{
			Ticker:   ticker,
			Start:    opts.Start,
			End:      s.now(),
			Interval: opts.Interval,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, providerError(ticker, err)
	}
	if quote.RegularMarketPrice == nil {
		return nil, fmt.Errorf("%w for %s", ErrStockNotFound, ticker)
	}

	change, percent := quoteChange(quote)
	return &dto.StockSnapshot{
		Ticker:        ticker,
		Name:          displayName(quote, ticker),
		Price:         *quote.RegularMarketPrice,
		Change:        FormatChange(change, percent),
		ChangeType:    ChangeType(change),
		ChangePercent: percent,
		Sentiment:     NewSentiment(sentimentScore),
		Sparkline:     Prices(series),
		Signal:        dto.Signal{Status: common.StatusNotComputed},
	}, nil
}

func quoteChange(q *dto.YahooQuote) (float64, float64) {
	var change, percent float64
	if q.RegularMarketChange != nil {
		change = *q.RegularMarketChange
	}
	if q.RegularMarketChangePercent != nil {
		percent = *q.RegularMarketChangePercent
	}
	return change, percent
}

func displayName(q *dto.YahooQuote, ticker string) string {
	switch {
	case q.LongName != "":
		return q.LongName
	case q.ShortName != "":
		return q.ShortName
	default:
		return ticker
	}
}

func newsTypes(filter string) []string {
	switch filter {
	case newsFilterNews:
		return []string{"STORY", "VIDEO"}
	case newsFilterFiling:
		return []string{"FILING"}
	default:
		return []string{"STORY", "FILING", "VIDEO"}
	}
}

func toNewsItems(articles []dto.NewsArticle) []dto.NewsItem {
	items := make([]dto.NewsItem, 0, len(articles))
	for _, a := range articles {
		item := dto.NewsItem{
			ID:        a.ID,
			Headline:  a.Headline,
			Source:    a.Source,
			Link:      a.Link,
			Sentiment: common.StatusNotComputed,
		}
		if !a.PublishedAt.IsZero() {
			item.Timestamp = a.PublishedAt.UTC().Format(time.RFC3339)
		}
		items = append(items, item)
	}
	return items
}

func keyStats(q *dto.YahooQuote) map[string]string {
	return map[string]string{
		"Prev. Close":      FormatFixed(q.RegularMarketPreviousClose),
		"Market Cap":       FormatCompact(q.MarketCap),
		"Enterprise Value": FormatCompact(q.EnterpriseValue),
		"Beta (5Y)":        FormatFixed(q.Beta),
		"52 Week High":     FormatFixed(q.FiftyTwoWeekHigh),
		"52 Week Low":      FormatFixed(q.FiftyTwoWeekLow),
		"P/E Ratio (TTM)":  FormatFixed(q.TrailingPE),
		"P/S Ratio":        FormatFixed(q.PriceToSales),
		"Avg. Volume":      FormatGrouped(q.AverageDailyVolume3Month),
	}
}

// PERating rates a trailing P/E: below 25 is strong, above 45 is weak.
func PERating(pe float64) string {
	switch {
	case pe < 25:
		return "Strong"
	case pe > 45:
		return "Weak"
	default:
		return "Neutral"
	}
}

func financialRatios(q *dto.YahooQuote) map[string]dto.Ratio {
	notComputed := dto.Ratio{Status: common.StatusNotComputed}
	ratios := map[string]dto.Ratio{
		"P/E Ratio":     notComputed,
		"Debt/Equity":   notComputed,
		"Current Ratio": notComputed,
		"ROE":           notComputed,
		"Gross Margin":  notComputed,
		"EBITDA":        notComputed,
	}
	if q.TrailingPE != nil {
		ratios["P/E Ratio"] = dto.Ratio{Value: FormatFixed(q.TrailingPE), Rating: PERating(*q.TrailingPE), Status: common.StatusReady}
	}
	if q.Ebitda != nil {
		ratios["EBITDA"] = dto.Ratio{Value: FormatCompact(q.Ebitda), Status: common.StatusReady}
	}
	return ratios
}

func technicalIndicators(q *dto.YahooQuote) map[string]dto.Indicator {
	notComputed := dto.Indicator{Status: common.StatusNotComputed}
	indicators := map[string]dto.Indicator{
		"RSI (14)":    notComputed,
		"MACD":        notComputed,
		"Stochastics": notComputed,
		"SMA (50)":    notComputed,
		"SMA (200)":   notComputed,
	}
	if q.FiftyDayAverage != nil {
		indicators["SMA (50)"] = dto.Indicator{Value: FormatFixed(q.FiftyDayAverage), Status: common.StatusReady}
	}
	if q.TwoHundredDayAverage != nil {
		indicators["SMA (200)"] = dto.Indicator{Value: FormatFixed(q.TwoHundredDayAverage), Status: common.StatusReady}
	}
	return indicators
}
