package telegram

import (
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender sends Markdown messages to one Telegram chat.
type Sender interface {
	SendMessage(text string) error
}

type botSender struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewClient creates a Telegram sender for chatID. It fails when the bot
// token is rejected.
func NewClient(botToken string, chatID int64) (Sender, error) {
	if chatID == 0 {
		return nil, errors.New("telegram chat id is required")
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to authorize telegram bot: %w", err)
	}
	return &botSender{bot: bot, chatID: chatID}, nil
}

func (s *botSender) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(s.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	if _, err := s.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send message to chat %d: %w", s.chatID, err)
	}
	return nil
}
