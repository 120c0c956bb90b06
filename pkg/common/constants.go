package common

const (
	// FreeWatchlistLimit caps the watchlist size of non-premium accounts.
	FreeWatchlistLimit = 15

	// MaxDetailsBatch is the largest ticker set accepted by one details request.
	MaxDetailsBatch = 50

	DefaultExchangeTimezone = "America/New_York"

	RedisKeyRateLimit = "ratelimit:%s:%d"
)

// Chart ranges accepted by the chart endpoint.
const (
	Range1D  = "1D"
	Range1W  = "1W"
	Range1M  = "1M"
	Range6M  = "6M"
	RangeYTD = "YTD"
	Range1Y  = "1Y"
	Range5Y  = "5Y"
	RangeMax = "Max"
)

// Change classifications, used by clients for color coding.
const (
	ChangePositive = "positive"
	ChangeNegative = "negative"
	ChangeNeutral  = "neutral"
)

// Sentiment labels derived from a score in [-1, 1].
const (
	SentimentStronglyPositive = "Strongly Positive"
	SentimentPositive         = "Positive"
	SentimentNeutral          = "Neutral"
	SentimentNegative         = "Negative"
	SentimentStronglyNegative = "Strongly Negative"
)

// Statuses of derived values. StatusNotComputed marks a value no producer
// has computed yet.
const (
	StatusReady       = "ready"
	StatusNotComputed = "not_computed"
	StatusUnavailable = "unavailable"
)

const (
	ContextKeyUserID = "userID"
	ContextKeyToken  = "token"
)
