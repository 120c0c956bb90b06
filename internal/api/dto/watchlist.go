package dto

// AddWatchlistRequest is the body of the watchlist add endpoint.
type AddWatchlistRequest struct {
	Ticker string `json:"ticker" validate:"required,ticker"`
}

// WatchlistResponse lists a user's tickers. Order carries no meaning.
type WatchlistResponse struct {
	Tickers []string `json:"tickers"`
}

// WatchlistDetailsRequest asks for snapshots of a ticker set.
type WatchlistDetailsRequest struct {
	Tickers []string `json:"tickers" validate:"max=50,dive,required,ticker"`
}

// Signal is the AI signal for a snapshot; only Status is reported until
// the analytics backend computes one.
type Signal struct {
	Status string `json:"status"`
	Label  string `json:"label,omitempty"`
}

// StockSnapshot is the per-ticker market/sentiment view of one refresh.
type StockSnapshot struct {
	Ticker        string    `json:"ticker"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	Change        string    `json:"change"`
	ChangeType    string    `json:"changeType"`
	ChangePercent float64   `json:"changePercent"`
	Sentiment     Sentiment `json:"sentiment"`
	Sparkline     []float64 `json:"sparkline"`
	Signal        Signal    `json:"signal"`
}
