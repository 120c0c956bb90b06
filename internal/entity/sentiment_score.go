package entity

import "time"

// SentimentScore is the latest aggregate sentiment computed for a ticker
// by the analytics backend. Score is in [-1, 1].
type SentimentScore struct {
	Ticker    string    `gorm:"primaryKey;type:varchar(16)" json:"ticker"`
	Score     float64   `gorm:"not null" json:"score"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SentimentScore) TableName() string {
	return "sentiment_scores"
}
