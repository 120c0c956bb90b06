package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apidto "finis-oculus/internal/api/dto"
	"finis-oculus/pkg/logger"
)

// ErrNotFound is returned when the API answers 404.
var ErrNotFound = errors.New("not found")

// StatusError is a non-2xx API answer.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api returned status code %d", e.StatusCode)
	}
	return fmt.Sprintf("api returned status code %d: %s", e.StatusCode, e.Message)
}

// APIRepository is the dashboard's view of the API service. Every call
// carries the caller's identity token.
type APIRepository interface {
	ListWatchlist(ctx context.Context, token string) ([]string, error)
	WatchlistDetails(ctx context.Context, token string, tickers []string) ([]apidto.StockSnapshot, error)
	ValidateTicker(ctx context.Context, token, ticker string) error
	AddTicker(ctx context.Context, token, ticker string) error
	RemoveTicker(ctx context.Context, token, ticker string) error
	GetProfile(ctx context.Context, token string) (*apidto.ProfileResponse, error)
}

type apiRepository struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// NewAPIRepository creates an API client for baseURL.
func NewAPIRepository(baseURL string, timeout time.Duration, log *logger.Logger) APIRepository {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &apiRepository{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

func (r *apiRepository) ListWatchlist(ctx context.Context, token string) ([]string, error) {
	var res apidto.WatchlistResponse
	if err := r.do(ctx, http.MethodGet, "/api/v1/watchlist", token, nil, &res); err != nil {
		return nil, err
	}
	return res.Tickers, nil
}

// WatchlistDetails fetches snapshots for all tickers in one request. An
// empty ticker set makes no request.
func (r *apiRepository) WatchlistDetails(ctx context.Context, token string, tickers []string) ([]apidto.StockSnapshot, error) {
	if len(tickers) == 0 {
		return []apidto.StockSnapshot{}, nil
	}
	var res []apidto.StockSnapshot
	req := apidto.WatchlistDetailsRequest{Tickers: tickers}
	if err := r.do(ctx, http.MethodPost, "/api/v1/watchlist/details", token, req, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *apiRepository) ValidateTicker(ctx context.Context, token, ticker string) error {
	return r.do(ctx, http.MethodGet, "/api/v1/validate/"+url.PathEscape(ticker), token, nil, nil)
}

func (r *apiRepository) AddTicker(ctx context.Context, token, ticker string) error {
	return r.do(ctx, http.MethodPost, "/api/v1/watchlist", token, apidto.AddWatchlistRequest{Ticker: ticker}, nil)
}

func (r *apiRepository) RemoveTicker(ctx context.Context, token, ticker string) error {
	return r.do(ctx, http.MethodDelete, "/api/v1/watchlist/"+url.PathEscape(ticker), token, nil, nil)
}

func (r *apiRepository) GetProfile(ctx context.Context, token string) (*apidto.ProfileResponse, error) {
	var res apidto.ProfileResponse
	if err := r.do(ctx, http.MethodGet, "/api/v1/profile", token, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *apiRepository) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.ErrorContext(ctx, "API request failed", logger.ErrorField(err), logger.StringField("path", path))
		return fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope apidto.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %s", ErrNotFound, envelope.Error)
		}
		return &StatusError{StatusCode: resp.StatusCode, Message: envelope.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
