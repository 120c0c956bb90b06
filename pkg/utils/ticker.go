package utils

import (
	"regexp"
	"strings"
)

var tickerPattern = regexp.MustCompile(`^[A-Z0-9^][A-Z0-9.\-=^]{0,11}$`)

// NormalizeTicker trims and upper-cases a user-supplied symbol.
func NormalizeTicker(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// IsValidTicker reports whether s, already normalized, looks like a
// provider symbol such as AAPL, BRK-B, ^GSPC or EURUSD=X.
func IsValidTicker(s string) bool {
	return tickerPattern.MatchString(s)
}
