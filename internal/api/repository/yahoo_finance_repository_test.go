package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finis-oculus/internal/api/config"
	"finis-oculus/internal/api/dto"
	"finis-oculus/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestYahooRepository(t *testing.T, handler http.HandlerFunc) YahooRepository {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.YahooFinance.QuoteURL = server.URL + "/v7/finance/quote"
	cfg.YahooFinance.ChartURL = server.URL + "/v8/finance/chart"
	cfg.YahooFinance.SearchURL = server.URL + "/v1/finance/search"
	cfg.YahooFinance.MaxRequestPerMinute = 6000
	return NewYahooFinanceRepository(cfg, logger.NewNop())
}

func TestGetChartParsesSeries(t *testing.T) {
	var gotPath, gotInterval string
	repo := newTestYahooRepository(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotInterval = r.URL.Query().Get("interval")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"chart":{"result":[{
			"meta":{"symbol":"AAPL","exchangeTimezoneName":"America/New_York"},
			"timestamp":[1710509400,1710510300,1710511200],
			"indicators":{"quote":[{"close":[171.5,null,172.25]}],"adjclose":[{"adjclose":[171.4,170.9]}]}
		}],"error":null}}`))
	})

	series, err := repo.GetChart(context.Background(), dto.GetChartParam{
		Ticker:   "AAPL",
		Start:    time.Unix(1710460800, 0),
		End:      time.Unix(1710547200, 0),
		Interval: "15m",
	})
	require.NoError(t, err)

	assert.Equal(t, "/v8/finance/chart/AAPL", gotPath)
	assert.Equal(t, "15m", gotInterval)
	assert.Equal(t, "America/New_York", series.Timezone)
	require.Len(t, series.Points, 3)
	assert.Equal(t, int64(1710509400), series.Points[0].Time.Unix())
	assert.Equal(t, 171.5, *series.Points[0].Close)
	assert.Nil(t, series.Points[1].Close)
	assert.Equal(t, 170.9, *series.Points[1].AdjClose)
	assert.Nil(t, series.Points[2].AdjClose)
}

func TestNotFoundResponses(t *testing.T) {
	t.Run("http 404", func(t *testing.T) {
		repo := newTestYahooRepository(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		_, err := repo.GetQuote(context.Background(), "ZZZZ")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("chart error object", func(t *testing.T) {
		repo := newTestYahooRepository(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
		})
		_, err := repo.GetChart(context.Background(), dto.GetChartParam{Ticker: "ZZZZ", Interval: "1d"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty quote result", func(t *testing.T) {
		repo := newTestYahooRepository(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"quoteResponse":{"result":[],"error":null}}`))
		})
		_, err := repo.GetQuote(context.Background(), "ZZZZ")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestServerErrorIsNotNotFound(t *testing.T) {
	repo := newTestYahooRepository(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	_, err := repo.GetQuote(context.Background(), "AAPL")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestGetQuote(t *testing.T) {
	repo := newTestYahooRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbols"))
		_, _ = w.Write([]byte(`{"quoteResponse":{"result":[{"symbol":"AAPL","longName":"Apple Inc.","regularMarketPrice":189.99,"averageDailyVolume3Month":52345678}],"error":null}}`))
	})

	quote, err := repo.GetQuote(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "Apple Inc.", quote.LongName)
	assert.Equal(t, 189.99, *quote.RegularMarketPrice)
	assert.Equal(t, int64(52345678), *quote.AverageDailyVolume3Month)
	assert.Nil(t, quote.TrailingPE)
}

func TestGetNewsQuery(t *testing.T) {
	repo := newTestYahooRepository(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "TSLA", q.Get("q"))
		assert.Equal(t, "10", q.Get("newsCount"))
		assert.Equal(t, "20", q.Get("newsOffset"))
		assert.Equal(t, "STORY,VIDEO", q.Get("newsType"))
		_, _ = w.Write([]byte(`{"news":[{"uuid":"n1","title":"Tesla recalls","publisher":"Reuters","link":"https://example.com/n1","providerPublishTime":1710509400,"type":"STORY"}]}`))
	})

	articles, err := repo.GetNews(context.Background(), dto.SearchNewsParam{
		Ticker: "TSLA",
		Count:  10,
		Offset: 20,
		Types:  []string{"STORY", "VIDEO"},
	})
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "Tesla recalls", articles[0].Headline)
	assert.Equal(t, "Reuters", articles[0].Source)
	assert.Equal(t, int64(1710509400), articles[0].PublishedAt.Unix())
}
