package service

import (
	"context"
	"testing"
	"time"

	"finis-oculus/internal/auth"
	"finis-oculus/internal/dashboard/dto"
	"finis-oculus/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherRefreshesImmediately(t *testing.T) {
	api := &fakeAPI{tickers: []string{"AAPL"}}
	board, _ := newTestBoard(api, false)
	w := NewWatcher(board, time.Minute, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	var got []dto.Card
	w.OnRefresh(func(ctx context.Context, cards []dto.Card) {
		got = cards
		cancel()
	})

	require.NoError(t, w.Run(ctx))
	require.Len(t, got, 1)
	assert.Equal(t, "AAPL", got[0].Ticker)
	assert.Equal(t, 1, api.listCalls)
}

func TestWatcherWithoutSession(t *testing.T) {
	board := NewBoard(&fakeAPI{}, &auth.SessionHolder{}, &countingNotifier{}, logger.NewNop())
	w := NewWatcher(board, time.Minute, logger.NewNop())

	assert.ErrorIs(t, w.Run(context.Background()), ErrNoSession)
}

func TestWatcherRejectsInterval(t *testing.T) {
	board, _ := newTestBoard(&fakeAPI{}, false)
	assert.Error(t, NewWatcher(board, 0, logger.NewNop()).Run(context.Background()))
}
