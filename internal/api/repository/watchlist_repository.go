package repository

import (
	"context"
	"errors"

	"finis-oculus/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrLimitReached is returned by AddWithinLimit when the list is full.
var ErrLimitReached = errors.New("watchlist limit reached")

// WatchlistRepository stores per-user ticker sets.
type WatchlistRepository interface {
	List(ctx context.Context, userID string) ([]string, error)
	AddWithinLimit(ctx context.Context, userID, ticker string, limit int) error
	Remove(ctx context.Context, userID, ticker string) error
}

// NewWatchlistRepository creates a new GORM-based watchlist repository.
func NewWatchlistRepository(db *gorm.DB) WatchlistRepository {
	return &watchlistRepository{db: db}
}

type watchlistRepository struct {
	db *gorm.DB
}

func (r *watchlistRepository) List(ctx context.Context, userID string) ([]string, error) {
	var tickers []string
	err := r.db.WithContext(ctx).
		Model(&entity.WatchlistItem{}).
		Where("user_id = ?", userID).
		Order("ticker").
		Pluck("ticker", &tickers).Error
	if err != nil {
		return nil, err
	}
	return tickers, nil
}

// AddWithinLimit inserts the ticker unless the list already holds limit
// entries. Re-adding a present ticker is a no-op. A limit <= 0 means no
// limit. The profile row is locked so concurrent adds for the same user
// serialize on the count.
func (r *watchlistRepository) AddWithinLimit(ctx context.Context, userID, ticker string, limit int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureProfile(tx, userID); err != nil {
			return err
		}
		var profile entity.UserProfile
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			First(&profile).Error; err != nil {
			return err
		}

		var exists int64
		if err := tx.Model(&entity.WatchlistItem{}).
			Where("user_id = ? AND ticker = ?", userID, ticker).
			Count(&exists).Error; err != nil {
			return err
		}
		if exists > 0 {
			return nil
		}

		if limit > 0 {
			var count int64
			if err := tx.Model(&entity.WatchlistItem{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
				return err
			}
			if count >= int64(limit) {
				return ErrLimitReached
			}
		}

		item := entity.WatchlistItem{UserID: userID, Ticker: ticker}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&item).Error
	})
}

// Remove deletes the ticker; removing an absent ticker succeeds.
func (r *watchlistRepository) Remove(ctx context.Context, userID, ticker string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND ticker = ?", userID, ticker).
		Delete(&entity.WatchlistItem{}).Error
}
