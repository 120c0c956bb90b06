package notifier

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"finis-oculus/internal/dashboard/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	messages []string
	err      error
}

func (s *recordingSender) SendMessage(text string) error {
	s.messages = append(s.messages, text)
	return s.err
}

func TestConsoleNotifier(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewConsoleNotifier(&buf).Notify(context.Background(), "Watchlist", "MSFT was not found."))
	assert.Equal(t, "[Watchlist] MSFT was not found.\n", buf.String())
}

func TestMultiNotifiesAll(t *testing.T) {
	var buf bytes.Buffer
	failing := &recordingSender{err: errors.New("telegram down")}
	multi := Multi{NewTelegramNotifier(failing), NewConsoleNotifier(&buf)}

	err := multi.Notify(context.Background(), "Watchlist", "hello")

	assert.Error(t, err)
	assert.Len(t, failing.messages, 1)
	assert.Contains(t, buf.String(), "hello")
}

func TestPublishDigest(t *testing.T) {
	sender := &recordingSender{}
	n := NewTelegramNotifier(sender)

	require.NoError(t, n.PublishDigest(context.Background(), []dto.Card{{Ticker: "AAPL", Name: "Apple Inc.", Signal: "not computed"}}))
	require.Len(t, sender.messages, 1)
	assert.Contains(t, sender.messages[0], "*AAPL*")
}
