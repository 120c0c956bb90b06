package dto

// Card is the view model of one watchlist stock.
type Card struct {
	Ticker         string
	Name           string
	Price          float64
	Change         string
	ChangeType     string
	SentimentScore float64
	SentimentLabel string
	Sparkline      []float64
	// Signal is the AI signal label, or "not computed" when the backend has none.
	Signal string
}
