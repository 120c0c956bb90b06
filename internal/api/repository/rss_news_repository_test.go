package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"finis-oculus/internal/api/dto"
	"finis-oculus/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRSSNewsRepository(t *testing.T) {
	feed := `<?xml version="1.0"?>
<rss version="2.0"><channel><title>Yahoo Finance</title>
<item><title>First</title><link>https://example.com/1</link><guid>g1</guid><pubDate>Fri, 15 Mar 2024 13:30:00 GMT</pubDate></item>
<item><title>Second</title><link>https://example.com/2</link></item>
<item><title>Third</title><link>https://example.com/3</link><guid>g3</guid></item>
</channel></rss>`
	var gotSymbol string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSymbol = r.URL.Query().Get("s")
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(strings.TrimSpace(feed)))
	}))
	defer server.Close()

	repo := NewRSSNewsRepository(server.URL, logger.NewNop())

	articles, err := repo.GetNews(context.Background(), dto.SearchNewsParam{Ticker: "AAPL", Count: 2, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, "AAPL", gotSymbol)
	require.Len(t, articles, 2)
	assert.Equal(t, "Second", articles[0].Headline)
	assert.Equal(t, "https://example.com/2", articles[0].ID)
	assert.Equal(t, "Yahoo Finance", articles[0].Source)
	assert.Equal(t, "g3", articles[1].ID)

	first, err := repo.GetNews(context.Background(), dto.SearchNewsParam{Ticker: "AAPL", Count: 1})
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, time.Date(2024, time.March, 15, 13, 30, 0, 0, time.UTC), first[0].PublishedAt.UTC())

	filings, err := repo.GetNews(context.Background(), dto.SearchNewsParam{Ticker: "AAPL", Types: []string{"FILING"}})
	require.NoError(t, err)
	assert.Empty(t, filings)
}
