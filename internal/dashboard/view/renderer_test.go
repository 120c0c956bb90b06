package view

import (
	"bytes"
	"testing"

	"finis-oculus/internal/dashboard/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSparkline(t *testing.T) {
	assert.Equal(t, "", Sparkline(nil))
	assert.Equal(t, "▁▄█", Sparkline([]float64{1, 1.5, 2}))
	assert.Equal(t, "▅▅▅", Sparkline([]float64{3, 3, 3}))
	assert.Equal(t, "█▁", Sparkline([]float64{10, -10}))
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, 3).Render(nil))
	assert.Contains(t, buf.String(), "Your watchlist is empty.")
}

func TestRenderCards(t *testing.T) {
	var buf bytes.Buffer
	cards := []dto.Card{
		{Ticker: "AAPL", Name: "Apple Inc.", Price: 189.99, Change: "+1.25 (0.66%)", ChangeType: "positive", Signal: "not computed"},
		{Ticker: "TSLA", Name: "Tesla, Inc.", Price: 171.05, Change: "-3.10 (1.78%)", ChangeType: "negative", Signal: "not computed"},
	}
	require.NoError(t, NewRenderer(&buf, 1).Render(cards))

	out := buf.String()
	assert.Contains(t, out, "AAPL")
	assert.Contains(t, out, "$189.99")
	assert.Contains(t, out, "TSLA")
	assert.Contains(t, out, "AI signal: not computed")
}
