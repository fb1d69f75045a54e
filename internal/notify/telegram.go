package notify

import (
	"fmt"
	"os"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/rs/zerolog/log"
)

const (
	telegramBotToken = "TELEGRAM_BOT_TOKEN"
	telegramChatID   = "TELEGRAM_CHAT_ID"
)

type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram reports training results to a telegram chat.
type Telegram struct {
	bot    botAPI
	chatID int64
}

// NewTelegram creates a new telegram reporter from the environment.
func NewTelegram() (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(os.Getenv(telegramBotToken))
	if err != nil {
		return nil, fmt.Errorf("error creating bot: %w", err)
	}
	chatIDProperty := os.Getenv(telegramChatID)
	chatID, err := strconv.ParseInt(chatIDProperty, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("error parsing chat ID: %w", err)
	}
	bot.Buffer = 0
	return &Telegram{
		bot:    bot,
		chatID: chatID,
	}, nil
}

func (t *Telegram) Report(title, body string) error {
	msg := tgbotapi.NewMessage(t.chatID, fmt.Sprintf("%s\n%s", title, body))
	sent, err := t.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("could not send report: %w", err)
	}
	log.Debug().Int("message", sent.MessageID).Str("title", title).Msg("sent report")
	return nil
}
