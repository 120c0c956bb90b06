package entity

import "time"

// WatchlistItem is one ticker in a user's watchlist. The (user, ticker)
// pair is the primary key, so a ticker appears at most once per user.
type WatchlistItem struct {
	UserID    string    `gorm:"primaryKey;type:varchar(128)" json:"user_id"`
	Ticker    string    `gorm:"primaryKey;type:varchar(16)" json:"ticker"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (WatchlistItem) TableName() string {
	return "watchlist_items"
}
