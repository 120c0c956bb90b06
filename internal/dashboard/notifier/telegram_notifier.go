package notifier

import (
	"context"
	"fmt"
	"time"

	"finis-oculus/internal/dashboard/dto"
	"finis-oculus/pkg/telegram"
)

// TelegramNotifier sends notifications and watchlist digests to a
// Telegram chat.
type TelegramNotifier struct {
	sender telegram.Sender
	now    func() time.Time
}

// NewTelegramNotifier creates a notifier over sender.
func NewTelegramNotifier(sender telegram.Sender) *TelegramNotifier {
	return &TelegramNotifier{sender: sender, now: time.Now}
}

func (n *TelegramNotifier) Notify(_ context.Context, title, message string) error {
	if err := n.sender.SendMessage(telegram.FormatAlert(title, message, n.now())); err != nil {
		return fmt.Errorf("failed to send telegram alert: %w", err)
	}
	return nil
}

// PublishDigest sends the rendered cards, split into as many messages as
// needed.
func (n *TelegramNotifier) PublishDigest(_ context.Context, cards []dto.Card) error {
	for _, msg := range telegram.FormatWatchlistDigest(cards, n.now()) {
		if err := n.sender.SendMessage(msg); err != nil {
			return fmt.Errorf("failed to send telegram digest: %w", err)
		}
	}
	return nil
}
