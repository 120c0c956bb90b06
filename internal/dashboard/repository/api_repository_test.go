package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apidto "finis-oculus/internal/api/dto"
	"finis-oculus/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI(t *testing.T, handler http.HandlerFunc) (APIRepository, *int) {
	t.Helper()
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	return NewAPIRepository(server.URL, 5*time.Second, logger.NewNop()), &calls
}

func TestWatchlistDetailsSendsTickers(t *testing.T) {
	api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/watchlist/details", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var req apidto.WatchlistDetailsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"AAPL", "MSFT"}, req.Tickers)

		_, _ = w.Write([]byte(`[{"ticker":"AAPL","price":189.99},{"ticker":"MSFT","price":410.5}]`))
	})

	snapshots, err := api.WatchlistDetails(context.Background(), "tok", []string{"AAPL", "MSFT"})
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	assert.Equal(t, 410.5, snapshots[1].Price)
}

func TestWatchlistDetailsEmptyMakesNoRequest(t *testing.T) {
	api, calls := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {})

	snapshots, err := api.WatchlistDetails(context.Background(), "tok", nil)
	require.NoError(t, err)
	assert.Empty(t, snapshots)
	assert.Zero(t, *calls)
}

func TestErrorStatuses(t *testing.T) {
	api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/validate/ZZZZ":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Ticker not found or invalid"}`))
		default:
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":"Free plan watchlist limit reached."}`))
		}
	})

	err := api.ValidateTicker(context.Background(), "tok", "ZZZZ")
	assert.ErrorIs(t, err, ErrNotFound)

	err = api.AddTicker(context.Background(), "tok", "NVDA")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
	assert.Equal(t, "Free plan watchlist limit reached.", statusErr.Message)
}

func TestListAndProfile(t *testing.T) {
	api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/watchlist":
			_, _ = w.Write([]byte(`{"tickers":["AAPL"]}`))
		case "/api/v1/profile":
			_, _ = w.Write([]byte(`{"userId":"user-1","premium":true,"watchlistLimit":0}`))
		case "/api/v1/watchlist/AAPL":
			assert.Equal(t, http.MethodDelete, r.Method)
			w.WriteHeader(http.StatusNoContent)
		}
	})

	tickers, err := api.ListWatchlist(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL"}, tickers)

	profile, err := api.GetProfile(context.Background(), "tok")
	require.NoError(t, err)
	assert.True(t, profile.Premium)

	require.NoError(t, api.RemoveTicker(context.Background(), "tok", "AAPL"))
}
