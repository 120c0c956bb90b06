package dto

// YahooError is the error object embedded in Yahoo Finance responses.
type YahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// YahooQuoteResponse is the payload of the v7 quote endpoint.
type YahooQuoteResponse struct {
	QuoteResponse struct {
		Result []YahooQuote `json:"result"`
		Error  *YahooError  `json:"error"`
	} `json:"quoteResponse"`
}

// YahooQuote holds the quote fields the shaping endpoints use. Pointers
// distinguish a missing field from a zero value.
type YahooQuote struct {
	Symbol                     string   `json:"symbol"`
	ShortName                  string   `json:"shortName"`
	LongName                   string   `json:"longName"`
	RegularMarketPrice         *float64 `json:"regularMarketPrice"`
	RegularMarketChange        *float64 `json:"regularMarketChange"`
	RegularMarketChangePercent *float64 `json:"regularMarketChangePercent"`
	RegularMarketPreviousClose *float64 `json:"regularMarketPreviousClose"`
	MarketCap                  *float64 `json:"marketCap"`
	EnterpriseValue            *float64 `json:"enterpriseValue"`
	Beta                       *float64 `json:"beta"`
	FiftyTwoWeekHigh           *float64 `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow            *float64 `json:"fiftyTwoWeekLow"`
	TrailingPE                 *float64 `json:"trailingPE"`
	PriceToSales               *float64 `json:"priceToSalesTrailing12Months"`
	AverageDailyVolume3Month   *int64   `json:"averageDailyVolume3Month"`
	FiftyDayAverage            *float64 `json:"fiftyDayAverage"`
	TwoHundredDayAverage       *float64 `json:"twoHundredDayAverage"`
	Ebitda                     *float64 `json:"ebitda"`
}

// YahooChartResponse is the payload of the v8 chart endpoint.
type YahooChartResponse struct {
	Chart struct {
		Result []YahooChartResult `json:"result"`
		Error  *YahooError        `json:"error"`
	} `json:"chart"`
}

type YahooChartResult struct {
	Meta struct {
		Symbol               string   `json:"symbol"`
		ExchangeTimezoneName string   `json:"exchangeTimezoneName"`
		RegularMarketPrice   *float64 `json:"regularMarketPrice"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close []*float64 `json:"close"`
		} `json:"quote"`
		AdjClose []struct {
			AdjClose []*float64 `json:"adjclose"`
		} `json:"adjclose"`
	} `json:"indicators"`
}

// YahooSearchResponse is the payload of the v1 search endpoint.
type YahooSearchResponse struct {
	News []YahooNews `json:"news"`
}

type YahooNews struct {
	UUID                string `json:"uuid"`
	Title               string `json:"title"`
	Publisher           string `json:"publisher"`
	Link                string `json:"link"`
	ProviderPublishTime int64  `json:"providerPublishTime"`
	Type                string `json:"type"`
}
