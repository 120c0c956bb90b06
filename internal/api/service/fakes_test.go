package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"finis-oculus/internal/api/dto"
	"finis-oculus/internal/api/repository"
	"finis-oculus/internal/entity"
)

type fakeYahoo struct {
	mu         sync.Mutex
	quotes     map[string]*dto.YahooQuote
	series     map[string]*dto.ChartSeries
	quoteErr   error
	chartErr   error
	quoteCalls atomic.Int32
	chartCalls atomic.Int32
	chartParam []dto.GetChartParam
}

func (f *fakeYahoo) GetQuote(_ context.Context, ticker string) (*dto.YahooQuote, error) {
	f.quoteCalls.Add(1)
	if f.quoteErr != nil {
		return nil, f.quoteErr
	}
	q, ok := f.quotes[ticker]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return q, nil
}

func (f *fakeYahoo) GetChart(_ context.Context, param dto.GetChartParam) (*dto.ChartSeries, error) {
	f.chartCalls.Add(1)
	f.mu.Lock()
	f.chartParam = append(f.chartParam, param)
	f.mu.Unlock()
	if f.chartErr != nil {
		return nil, f.chartErr
	}
	s, ok := f.series[param.Ticker]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return s, nil
}

type fakeNews struct {
	articles []dto.NewsArticle
	err      error
	params   []dto.SearchNewsParam
}

func (f *fakeNews) GetNews(_ context.Context, param dto.SearchNewsParam) ([]dto.NewsArticle, error) {
	f.params = append(f.params, param)
	if f.err != nil {
		return nil, f.err
	}
	end := param.Offset + param.Count
	if param.Offset >= len(f.articles) {
		return nil, nil
	}
	if end > len(f.articles) {
		end = len(f.articles)
	}
	return f.articles[param.Offset:end], nil
}

type fakeSentiment struct {
	scores map[string]float64
	err    error
}

func (f *fakeSentiment) GetByTicker(_ context.Context, ticker string) (*entity.SentimentScore, error) {
	if f.err != nil {
		return nil, f.err
	}
	score, ok := f.scores[ticker]
	if !ok {
		return nil, nil
	}
	return &entity.SentimentScore{Ticker: ticker, Score: score}, nil
}

func (f *fakeSentiment) GetByTickers(_ context.Context, tickers []string) (map[string]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]float64)
	for _, t := range tickers {
		if s, ok := f.scores[t]; ok {
			out[t] = s
		}
	}
	return out, nil
}

type fakeSummary struct {
	text string
	err  error
}

func (f *fakeSummary) Summarize(context.Context, repository.SummaryInput) (string, error) {
	return f.text, f.err
}

type fakeProfiles struct {
	premium map[string]bool
	err     error
}

func (f *fakeProfiles) GetOrCreate(_ context.Context, userID string) (*entity.UserProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &entity.UserProfile{UserID: userID, Premium: f.premium[userID]}, nil
}

type fakeWatchlist struct {
	items    map[string][]string
	addErr   error
	addCalls int
	limits   []int
}

func (f *fakeWatchlist) List(_ context.Context, userID string) ([]string, error) {
	return f.items[userID], nil
}

func (f *fakeWatchlist) AddWithinLimit(_ context.Context, userID, ticker string, limit int) error {
	f.addCalls++
	f.limits = append(f.limits, limit)
	if f.addErr != nil {
		return f.addErr
	}
	for _, t := range f.items[userID] {
		if t == ticker {
			return nil
		}
	}
	if limit > 0 && len(f.items[userID]) >= limit {
		return repository.ErrLimitReached
	}
	if f.items == nil {
		f.items = make(map[string][]string)
	}
	f.items[userID] = append(f.items[userID], ticker)
	return nil
}

func (f *fakeWatchlist) Remove(_ context.Context, userID, ticker string) error {
	kept := f.items[userID][:0]
	for _, t := range f.items[userID] {
		if t != ticker {
			kept = append(kept, t)
		}
	}
	f.items[userID] = kept
	return nil
}

var errProvider = errors.New("provider unavailable")
