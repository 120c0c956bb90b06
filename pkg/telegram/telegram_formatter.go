package telegram

import (
	"fmt"
	"strings"
	"time"

	"finis-oculus/internal/dashboard/dto"
	"finis-oculus/pkg/common"
	"finis-oculus/pkg/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// maxMessageLen stays under Telegram's 4096 character limit.
const maxMessageLen = 4090

// FormatWatchlistDigest renders cards as Markdown messages, splitting
// into parts so no message exceeds the Telegram limit.
func FormatWatchlistDigest(cards []dto.Card, at time.Time) []string {
	if len(cards) == 0 {
		return []string{"👀 *Watchlist*\n\nYour watchlist is empty."}
	}

	var messages []string
	var current strings.Builder
	part := 1

	startNewPart := func() {
		current.Reset()
		if part == 1 {
			current.WriteString(fmt.Sprintf("👀 *Watchlist* (%s)\n\n", utils.PrettyDate(at)))
		} else {
			current.WriteString(fmt.Sprintf("--- *Watchlist part %d* ---\n\n", part))
		}
	}
	startNewPart()

	for _, c := range cards {
		var entry strings.Builder
		entry.WriteString(fmt.Sprintf("%s *%s* %s\n", changeIcon(c.ChangeType), c.Ticker, tgbotapi.EscapeText(tgbotapi.ModeMarkdown, c.Name)))
		entry.WriteString(fmt.Sprintf("💰 %.2f  %s\n", c.Price, c.Change))
		entry.WriteString(fmt.Sprintf("%s %s (%.2f)\n", sentimentIcon(c.SentimentLabel), c.SentimentLabel, c.SentimentScore))
		entry.WriteString(fmt.Sprintf("🤖 Signal: %s\n\n", c.Signal))

		if current.Len()+entry.Len() > maxMessageLen {
			messages = append(messages, current.String())
			part++
			startNewPart()
		}
		current.WriteString(entry.String())
	}

	return append(messages, current.String())
}

// FormatAlert renders a failed action notification.
func FormatAlert(title, message string, at time.Time) string {
	return fmt.Sprintf("📛 *%s*\n%s\n_%s_",
		tgbotapi.EscapeText(tgbotapi.ModeMarkdown, title),
		tgbotapi.EscapeText(tgbotapi.ModeMarkdown, message),
		utils.PrettyDate(at))
}

func changeIcon(changeType string) string {
	switch changeType {
	case common.ChangePositive:
		return "📈"
	case common.ChangeNegative:
		return "📉"
	default:
		return "➖"
	}
}

func sentimentIcon(label string) string {
	switch label {
	case common.SentimentStronglyPositive, common.SentimentPositive:
		return "😊"
	case common.SentimentStronglyNegative, common.SentimentNegative:
		return "😟"
	default:
		return "😐"
	}
}
