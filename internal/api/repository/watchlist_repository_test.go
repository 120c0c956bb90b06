package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"finis-oculus/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFreeLimit = 15

func fillWatchlist(t *testing.T, repo WatchlistRepository, userID string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, repo.AddWithinLimit(context.Background(), userID, fmt.Sprintf("T%02d", i), testFreeLimit))
	}
}

func TestAddWithinLimitUpToCap(t *testing.T) {
	repo := NewWatchlistRepository(newTestDB(t))
	ctx := context.Background()

	fillWatchlist(t, repo, "user-1", testFreeLimit-1)
	require.NoError(t, repo.AddWithinLimit(ctx, "user-1", "AAPL", testFreeLimit))

	tickers, err := repo.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, tickers, testFreeLimit)
	assert.Contains(t, tickers, "AAPL")
}

func TestAddWithinLimitRejectsOverCap(t *testing.T) {
	repo := NewWatchlistRepository(newTestDB(t))
	ctx := context.Background()
	fillWatchlist(t, repo, "user-1", testFreeLimit)

	err := repo.AddWithinLimit(ctx, "user-1", "NVDA", testFreeLimit)
	assert.ErrorIs(t, err, ErrLimitReached)

	tickers, err := repo.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, tickers, testFreeLimit)
	assert.NotContains(t, tickers, "NVDA")
}

func TestAddWithinLimitDuplicateAtCapIsNoop(t *testing.T) {
	repo := NewWatchlistRepository(newTestDB(t))
	ctx := context.Background()
	fillWatchlist(t, repo, "user-1", testFreeLimit)

	require.NoError(t, repo.AddWithinLimit(ctx, "user-1", "T03", testFreeLimit))

	tickers, err := repo.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, tickers, testFreeLimit)
}

func TestAddWithinLimitUnlimited(t *testing.T) {
	repo := NewWatchlistRepository(newTestDB(t))
	ctx := context.Background()

	for i := 0; i < testFreeLimit+5; i++ {
		require.NoError(t, repo.AddWithinLimit(ctx, "premium-1", fmt.Sprintf("P%02d", i), 0))
	}

	tickers, err := repo.List(ctx, "premium-1")
	require.NoError(t, err)
	assert.Len(t, tickers, testFreeLimit+5)
}

func TestAddWithinLimitCountsPerUser(t *testing.T) {
	repo := NewWatchlistRepository(newTestDB(t))
	ctx := context.Background()
	fillWatchlist(t, repo, "user-1", testFreeLimit)

	require.NoError(t, repo.AddWithinLimit(ctx, "user-2", "AAPL", testFreeLimit))
}

func TestAddWithinLimitConcurrentAdds(t *testing.T) {
	repo := NewWatchlistRepository(newTestDB(t))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		rejected int
	)
	for i := 0; i < testFreeLimit+5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.AddWithinLimit(context.Background(), "user-1", fmt.Sprintf("C%02d", i), testFreeLimit)
			if err != nil {
				assert.ErrorIs(t, err, ErrLimitReached)
				mu.Lock()
				rejected++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	tickers, err := repo.List(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, tickers, testFreeLimit)
	assert.Equal(t, 5, rejected)
}

func TestRemoveIsIdempotent(t *testing.T) {
	repo := NewWatchlistRepository(newTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.AddWithinLimit(ctx, "user-1", "AAPL", testFreeLimit))

	require.NoError(t, repo.Remove(ctx, "user-1", "AAPL"))
	require.NoError(t, repo.Remove(ctx, "user-1", "AAPL"))

	tickers, err := repo.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, tickers)
}

func TestGetOrCreateProfile(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	profile, err := repo.GetOrCreate(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", profile.UserID)
	assert.False(t, profile.Premium)

	require.NoError(t, db.Model(&entity.UserProfile{}).Where("user_id = ?", "user-1").Update("premium", true).Error)

	profile, err = repo.GetOrCreate(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, profile.Premium)
}

func TestGetOrCreateProfileConcurrentFirstUse(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepository(db)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = repo.GetOrCreate(context.Background(), "user-1")
		}()
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	var count int64
	require.NoError(t, db.Model(&entity.UserProfile{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSentimentByTickers(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&[]entity.SentimentScore{
		{Ticker: "AAPL", Score: 0.42},
		{Ticker: "TSLA", Score: -0.7},
	}).Error)
	repo := NewSentimentRepository(db)

	scores, err := repo.GetByTickers(context.Background(), []string{"AAPL", "TSLA", "MSFT"})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"AAPL": 0.42, "TSLA": -0.7}, scores)

	missing, err := repo.GetByTicker(context.Background(), "MSFT")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
