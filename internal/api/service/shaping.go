package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"finis-oculus/internal/api/dto"
	"finis-oculus/pkg/common"
	"finis-oculus/pkg/utils"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	labelTime      = "3:04 PM"
	labelMonthDay  = "Jan 2"
	labelMonthYear = "Jan 2, 2006"
)

var epoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// ChartOptionsFor maps a chart range to the provider's start date and
// sampling interval. Unknown ranges fall back to six months of daily data.
func ChartOptionsFor(rng string, now time.Time) dto.ChartOptions {
	switch rng {
	case common.Range1D:
		return dto.ChartOptions{Start: now.AddDate(0, 0, -1), Interval: "15m"}
	case common.Range1W:
		return dto.ChartOptions{Start: now.AddDate(0, 0, -7), Interval: "1h"}
	case common.Range1M:
		return dto.ChartOptions{Start: now.AddDate(0, -1, 0), Interval: "1d"}
	case common.Range6M:
		return dto.ChartOptions{Start: now.AddDate(0, -6, 0), Interval: "1d"}
	case common.RangeYTD:
		return dto.ChartOptions{Start: utils.StartOfYear(now), Interval: "1d"}
	case common.Range1Y:
		return dto.ChartOptions{Start: now.AddDate(-1, 0, 0), Interval: "1d"}
	case common.Range5Y:
		return dto.ChartOptions{Start: now.AddDate(-5, 0, 0), Interval: "1wk"}
	case common.RangeMax:
		return dto.ChartOptions{Start: epoch, Interval: "1mo"}
	default:
		return dto.ChartOptions{Start: now.AddDate(0, -6, 0), Interval: "1d"}
	}
}

// FormatLabel renders an x-axis label for t in loc: time of day for short
// ranges, month/day for medium ranges and month/day/year for long ones.
func FormatLabel(t time.Time, rng string, loc *time.Location) string {
	t = t.In(loc)
	switch rng {
	case common.Range1D, common.Range1W:
		return t.Format(labelTime)
	case common.Range5Y, common.RangeMax:
		return t.Format(labelMonthYear)
	default:
		return t.Format(labelMonthDay)
	}
}

// PointPrice returns the close, falling back to the adjusted close, and
// whether the result is a usable (present and positive) price.
func PointPrice(p dto.PricePoint) (float64, bool) {
	var price *float64
	switch {
	case p.Close != nil:
		price = p.Close
	case p.AdjClose != nil:
		price = p.AdjClose
	default:
		return 0, false
	}
	if math.IsNaN(*price) || *price <= 0 {
		return 0, false
	}
	return *price, true
}

// BuildPriceHistory labels every usable point in the exchange timezone and
// drops points without a positive price.
func BuildPriceHistory(series *dto.ChartSeries, rng string) []dto.ChartPoint {
	history := make([]dto.ChartPoint, 0, len(series.Points))
	loc := utils.LoadLocation(series.Timezone, common.DefaultExchangeTimezone)
	for _, p := range series.Points {
		price, ok := PointPrice(p)
		if !ok {
			continue
		}
		history = append(history, dto.ChartPoint{
			Name:  FormatLabel(p.Time, rng, loc),
			Price: price,
		})
	}
	return history
}

// Prices returns the usable prices of a series in order.
func Prices(series *dto.ChartSeries) []float64 {
	prices := make([]float64, 0, len(series.Points))
	for _, p := range series.Points {
		if price, ok := PointPrice(p); ok {
			prices = append(prices, price)
		}
	}
	return prices
}

// ChangeType classifies a raw change value for color coding.
func ChangeType(change float64) string {
	switch {
	case change > 0:
		return common.ChangePositive
	case change < 0:
		return common.ChangeNegative
	default:
		return common.ChangeNeutral
	}
}

// FormatChange renders "+1.23 (0.45%)". Only positive values get an
// explicit sign; negative values carry their own.
func FormatChange(change, percent float64) string {
	sign := ""
	if change > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.2f (%.2f%%)", sign, change, percent)
}

// SentimentLabel maps a score in [-1, 1] to one of five labels. All band
// boundaries are strict.
func SentimentLabel(score float64) string {
	switch {
	case score > 0.5:
		return common.SentimentStronglyPositive
	case score > 0.1:
		return common.SentimentPositive
	case score < -0.5:
		return common.SentimentStronglyNegative
	case score < -0.1:
		return common.SentimentNegative
	default:
		return common.SentimentNeutral
	}
}

// NewSentiment builds the sentiment view for a score; a nil score means no
// record exists and yields a neutral zero.
func NewSentiment(score *float64) dto.Sentiment {
	if score == nil {
		return dto.Sentiment{Score: 0, Label: common.SentimentNeutral}
	}
	return dto.Sentiment{Score: *score, Label: SentimentLabel(*score)}
}

// FormatFixed renders v with two decimals, or "N/A" when missing.
func FormatFixed(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

var compactUnits = []struct {
	size   float64
	suffix string
}{
	{1e12, "T"},
	{1e9, "B"},
	{1e6, "M"},
	{1e3, "K"},
}

// FormatCompact renders large numbers in short compact notation, e.g.
// 3.1T, 950B, 12M, 1.2K. Missing values render as "N/A".
func FormatCompact(v *float64) string {
	if v == nil {
		return "N/A"
	}
	n := *v
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	for i, unit := range compactUnits {
		if n < unit.size {
			continue
		}
		scaled := n / unit.size
		text := compactDigits(scaled)
		if text == "1000" && i > 0 {
			return sign + "1" + compactUnits[i-1].suffix
		}
		return sign + text + unit.suffix
	}
	return sign + strconv.FormatFloat(math.Round(n), 'f', 0, 64)
}

func compactDigits(scaled float64) string {
	if scaled < 10 {
		text := strconv.FormatFloat(scaled, 'f', 1, 64)
		return strings.TrimSuffix(text, ".0")
	}
	return strconv.FormatFloat(math.Round(scaled), 'f', 0, 64)
}

var numberPrinter = message.NewPrinter(language.English)

// FormatGrouped renders an integer with thousands separators, or "N/A".
func FormatGrouped(v *int64) string {
	if v == nil {
		return "N/A"
	}
	return numberPrinter.Sprintf("%d", *v)
}
