package service

import (
	apidto "finis-oculus/internal/api/dto"
	"finis-oculus/internal/dashboard/dto"
	"finis-oculus/pkg/common"
)

const signalNotComputed = "not computed"

// ToCard maps a market snapshot to its card view model.
func ToCard(s apidto.StockSnapshot) dto.Card {
	signal := signalNotComputed
	if s.Signal.Status == common.StatusReady && s.Signal.Label != "" {
		signal = s.Signal.Label
	}
	name := s.Name
	if name == "" {
		name = s.Ticker
	}
	return dto.Card{
		Ticker:         s.Ticker,
		Name:           name,
		Price:          s.Price,
		Change:         s.Change,
		ChangeType:     s.ChangeType,
		SentimentScore: s.Sentiment.Score,
		SentimentLabel: s.Sentiment.Label,
		Sparkline:      s.Sparkline,
		Signal:         signal,
	}
}
