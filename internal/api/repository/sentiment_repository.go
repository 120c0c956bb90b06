package repository

import (
	"context"
	"errors"

	"finis-oculus/internal/entity"

	"gorm.io/gorm"
)

// SentimentRepository reads sentiment scores computed by the analytics backend.
type SentimentRepository interface {
	GetByTicker(ctx context.Context, ticker string) (*entity.SentimentScore, error)
	GetByTickers(ctx context.Context, tickers []string) (map[string]float64, error)
}

// NewSentimentRepository creates a new instance of SentimentRepository.
func NewSentimentRepository(db *gorm.DB) SentimentRepository {
	return &sentimentRepository{db: db}
}

type sentimentRepository struct {
	db *gorm.DB
}

// GetByTicker returns nil without error when no score exists.
func (r *sentimentRepository) GetByTicker(ctx context.Context, ticker string) (*entity.SentimentScore, error) {
	var score entity.SentimentScore
	result := r.db.WithContext(ctx).Where("ticker = ?", ticker).First(&score)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &score, nil
}

func (r *sentimentRepository) GetByTickers(ctx context.Context, tickers []string) (map[string]float64, error) {
	scores := make(map[string]float64, len(tickers))
	if len(tickers) == 0 {
		return scores, nil
	}

	var rows []entity.SentimentScore
	if err := r.db.WithContext(ctx).Where("ticker IN ?", tickers).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		scores[row.Ticker] = row.Score
	}
	return scores, nil
}
