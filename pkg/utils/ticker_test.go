package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsValidTicker(t *testing.T) {
	for _, s := range []string{"AAPL", "BRK-B", "BRK.B", "^GSPC", "EURUSD=X", "7203.T"} {
		assert.True(t, IsValidTicker(s), s)
	}
	for _, s := range []string{"", "aapl", "AA PL", "TOOLONGSYMBOL1", "-AAPL", "AAPL!"} {
		assert.False(t, IsValidTicker(s), s)
	}
}

func TestNormalizeTicker(t *testing.T) {
	assert.Equal(t, "BRK-B", NormalizeTicker("  brk-b\n"))
}

func TestLoadLocationFallback(t *testing.T) {
	assert.Equal(t, "America/New_York", LoadLocation("Not/AZone", "America/New_York").String())
	assert.Equal(t, "Asia/Tokyo", LoadLocation("Asia/Tokyo", "America/New_York").String())
	assert.Equal(t, time.UTC, LoadLocation("", "Bogus/Zone"))
}

func TestStartOfYear(t *testing.T) {
	now := time.Date(2024, time.August, 9, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), StartOfYear(now))
}
