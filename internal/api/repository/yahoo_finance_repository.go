package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"finis-oculus/internal/api/config"
	"finis-oculus/internal/api/dto"
	"finis-oculus/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrNotFound is returned when the provider has no data for a symbol.
var ErrNotFound = errors.New("provider has no data for symbol")

// YahooFinanceRepository reads quotes and historical series from Yahoo Finance.
type YahooFinanceRepository interface {
	GetQuote(ctx context.Context, ticker string) (*dto.YahooQuote, error)
	GetChart(ctx context.Context, param dto.GetChartParam) (*dto.ChartSeries, error)
}

// NewsRepository reads provider news for a symbol.
type NewsRepository interface {
	GetNews(ctx context.Context, param dto.SearchNewsParam) ([]dto.NewsArticle, error)
}

type yahooFinanceRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
	crumbs         *crumbProvider
}

// YahooRepository is the provider client; it serves both quotes/charts
// and news.
type YahooRepository interface {
	YahooFinanceRepository
	NewsRepository
}

func NewYahooFinanceRepository(cfg *config.Config, log *logger.Logger) YahooRepository {
	perMinute := cfg.YahooFinance.MaxRequestPerMinute
	if perMinute <= 0 {
		perMinute = 60
	}
	timeout := cfg.YahooFinance.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	jar, _ := cookiejar.New(nil)
	httpClient := &http.Client{
		Timeout: timeout,
		Jar:     jar,
	}

	repo := &yahooFinanceRepository{
		cfg:            cfg,
		log:            log,
		httpClient:     httpClient,
		requestLimiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute/10+1),
	}
	if cfg.YahooFinance.CrumbURL != "" {
		repo.crumbs = newCrumbProvider(cfg.YahooFinance.CookieURL, cfg.YahooFinance.CrumbURL, httpClient, log)
	}
	return repo
}

// GetQuote calls the quote endpoint with the session crumb. A 401 means
// the session expired; the crumb is renewed and the call made once more.
func (r *yahooFinanceRepository) GetQuote(ctx context.Context, ticker string) (*dto.YahooQuote, error) {
	body, err := r.sendQuoteRequest(ctx, ticker, false)
	if errors.Is(err, errUnauthorized) && r.crumbs != nil {
		r.log.InfoContext(ctx, "Yahoo Finance session expired, renewing crumb", logger.StringField("ticker", ticker))
		body, err = r.sendQuoteRequest(ctx, ticker, true)
	}
	if err != nil {
		return nil, err
	}

	var response dto.YahooQuoteResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode quote response: %w", err)
	}
	if response.QuoteResponse.Error != nil {
		return nil, yahooError(response.QuoteResponse.Error)
	}
	if len(response.QuoteResponse.Result) == 0 {
		return nil, ErrNotFound
	}

	return &response.QuoteResponse.Result[0], nil
}

func (r *yahooFinanceRepository) sendQuoteRequest(ctx context.Context, ticker string, refreshCrumb bool) ([]byte, error) {
	query := url.Values{}
	query.Set("symbols", ticker)
	if r.crumbs != nil {
		crumb, err := r.crumbs.Crumb(ctx, refreshCrumb)
		if err != nil {
			return nil, err
		}
		query.Set("crumb", crumb)
	}
	return r.sendRequest(ctx, r.cfg.YahooFinance.QuoteURL+"?"+query.Encode())
}

func (r *yahooFinanceRepository) GetChart(ctx context.Context, param dto.GetChartParam) (*dto.ChartSeries, error) {
	query := url.Values{}
	query.Set("period1", strconv.FormatInt(param.Start.Unix(), 10))
	query.Set("period2", strconv.FormatInt(param.End.Unix(), 10))
	query.Set("interval", param.Interval)
	query.Set("events", "history")

	endpoint := fmt.Sprintf("%s/%s?%s", r.cfg.YahooFinance.ChartURL, url.PathEscape(param.Ticker), query.Encode())
	body, err := r.sendRequest(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var response dto.YahooChartResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode chart response: %w", err)
	}
	if response.Chart.Error != nil {
		return nil, yahooError(response.Chart.Error)
	}
	if len(response.Chart.Result) == 0 {
		return nil, ErrNotFound
	}

	result := response.Chart.Result[0]
	series := &dto.ChartSeries{
		Timezone: result.Meta.ExchangeTimezoneName,
		Points:   make([]dto.PricePoint, 0, len(result.Timestamp)),
	}

	var closes, adjCloses []*float64
	if len(result.Indicators.Quote) > 0 {
		closes = result.Indicators.Quote[0].Close
	}
	if len(result.Indicators.AdjClose) > 0 {
		adjCloses = result.Indicators.AdjClose[0].AdjClose
	}

	for i, ts := range result.Timestamp {
		point := dto.PricePoint{Time: time.Unix(ts, 0)}
		if i < len(closes) {
			point.Close = closes[i]
		}
		if i < len(adjCloses) {
			point.AdjClose = adjCloses[i]
		}
		series.Points = append(series.Points, point)
	}

	return series, nil
}

func (r *yahooFinanceRepository) GetNews(ctx context.Context, param dto.SearchNewsParam) ([]dto.NewsArticle, error) {
	query := url.Values{}
	query.Set("q", param.Ticker)
	query.Set("quotesCount", "0")
	query.Set("newsCount", strconv.Itoa(param.Count))
	if param.Offset > 0 {
		query.Set("newsOffset", strconv.Itoa(param.Offset))
	}
	if len(param.Types) > 0 {
		query.Set("newsType", strings.Join(param.Types, ","))
	}

	body, err := r.sendRequest(ctx, r.cfg.YahooFinance.SearchURL+"?"+query.Encode())
	if err != nil {
		return nil, err
	}

	var response dto.YahooSearchResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	articles := make([]dto.NewsArticle, 0, len(response.News))
	for _, n := range response.News {
		articles = append(articles, dto.NewsArticle{
			ID:          n.UUID,
			Headline:    n.Title,
			Source:      n.Publisher,
			Link:        n.Link,
			Type:        n.Type,
			PublishedAt: time.Unix(n.ProviderPublishTime, 0),
		})
	}
	return articles, nil
}

func (r *yahooFinanceRepository) sendRequest(ctx context.Context, endpoint string) ([]byte, error) {
	fields := []zap.Field{
		zap.String("url", endpoint),
		zap.Int("max_request_per_minute", r.cfg.YahooFinance.MaxRequestPerMinute),
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to wait for request limit", fields...)
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to create new http request", fields...)
		return nil, err
	}
	req.Header.Set("User-Agent", yahooUserAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to send request to Yahoo Finance API", fields...)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to read response body from Yahoo Finance API", fields...)
		return nil, err
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		r.log.WarnContext(ctx, "Yahoo Finance API rejected the session", fields...)
		return nil, errUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		r.log.DebugContext(ctx, "Yahoo Finance API has no data", fields...)
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		fields = append(fields, zap.Int("status_code", resp.StatusCode))
		r.log.ErrorContext(ctx, "Received non-OK response from Yahoo Finance API", fields...)
		return nil, fmt.Errorf("yahoo finance returned status %d", resp.StatusCode)
	}

	return body, nil
}

func yahooError(e *dto.YahooError) error {
	if strings.EqualFold(e.Code, "Not Found") {
		return ErrNotFound
	}
	return fmt.Errorf("yahoo finance error %s: %s", e.Code, e.Description)
}
