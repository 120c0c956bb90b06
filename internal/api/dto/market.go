package dto

import "time"

// GetChartParam selects a historical series from the provider.
type GetChartParam struct {
	Ticker   string
	Start    time.Time
	End      time.Time
	Interval string
}

// SearchNewsParam selects a page of provider news.
type SearchNewsParam struct {
	Ticker string
	Count  int
	Offset int
	Types  []string
}

// PricePoint is one provider sample. Close and AdjClose are nil when the
// provider reported no value.
type PricePoint struct {
	Time     time.Time
	Close    *float64
	AdjClose *float64
}

// ChartSeries is a provider historical series.
type ChartSeries struct {
	Timezone string
	Points   []PricePoint
}

// NewsArticle is a provider news item.
type NewsArticle struct {
	ID          string
	Headline    string
	Source      string
	Link        string
	Type        string
	PublishedAt time.Time
}

// ChartOptions is the provider request derived from a chart range.
type ChartOptions struct {
	Start    time.Time
	Interval string
}

// ChartPoint is one labelled point of a display series.
type ChartPoint struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ChartResponse is returned by the chart endpoint.
type ChartResponse struct {
	PriceHistory []ChartPoint `json:"priceHistory"`
	Price        float64      `json:"price"`
	Change       string       `json:"change"`
	ChangeType   string       `json:"changeType"`
}

// Sentiment is a score in [-1, 1] with its display label.
type Sentiment struct {
	Score float64 `json:"score"`
	Label string  `json:"label"`
}

// NewsItem is a display news entry. Sentiment stays "not_computed" until
// a per-article sentiment producer exists.
type NewsItem struct {
	ID        string `json:"id"`
	Headline  string `json:"headline"`
	Source    string `json:"source"`
	Timestamp string `json:"timestamp"`
	Link      string `json:"link,omitempty"`
	Sentiment string `json:"sentiment"`
}

// NewsResponse is returned by the news endpoint.
type NewsResponse struct {
	News     []NewsItem `json:"news"`
	HasMore  bool       `json:"hasMore"`
	NextPage int        `json:"nextPage"`
}

// Ratio is a financial ratio. Rating is empty when no rating rule exists;
// Status is "not_computed" when the value itself is not available yet.
type Ratio struct {
	Value  string `json:"value,omitempty"`
	Rating string `json:"rating,omitempty"`
	Status string `json:"status,omitempty"`
}

// Indicator is a technical indicator. Signal is empty when no signal rule
// exists for it.
type Indicator struct {
	Value  string `json:"value,omitempty"`
	Signal string `json:"signal,omitempty"`
	Status string `json:"status,omitempty"`
}

// AISummary carries the generated summary text, or only a status when no
// summary was produced.
type AISummary struct {
	Status string `json:"status"`
	Text   string `json:"text,omitempty"`
}

// StockDetailResponse is returned by the stock detail endpoint.
type StockDetailResponse struct {
	Ticker              string               `json:"ticker"`
	Name                string               `json:"name"`
	Price               float64              `json:"price"`
	PreviousClose       *float64             `json:"previousClose"`
	Change              string               `json:"change"`
	ChangeType          string               `json:"changeType"`
	AISummary           AISummary            `json:"aiSummary"`
	PriceHistory        []ChartPoint         `json:"priceHistory"`
	Sentiment           Sentiment            `json:"sentiment"`
	RecentNews          []NewsItem           `json:"recentNews"`
	KeyStats            map[string]string    `json:"keyStats"`
	AIInsights          AISummary            `json:"aiInsights"`
	FinancialRatios     map[string]Ratio     `json:"financialRatios"`
	TechnicalIndicators map[string]Indicator `json:"technicalIndicators"`
}

// ValidateResponse is returned for a valid ticker.
type ValidateResponse struct {
	Message string `json:"message"`
}
