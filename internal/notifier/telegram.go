package notifier

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramSender is the part of tgbotapi.BotAPI used to deliver alerts.
type TelegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier delivers alerts as Telegram messages to a fixed chat.
type TelegramNotifier struct {
	bot    TelegramSender
	chatID int64
}

// NewTelegramNotifier returns new TelegramNotifier posting to chatID.
func NewTelegramNotifier(bot TelegramSender, chatID int64) *TelegramNotifier {
	return &TelegramNotifier{
		bot:    bot,
		chatID: chatID,
	}
}

// Send posts the alert and returns the Telegram message ID.
func (n *TelegramNotifier) Send(_ context.Context, alert Alert) (string, error) {
	text := fmt.Sprintf(
		"🔔 Price Drop Alert!\n\n%s is now %.2f %s at %s (target %.2f %s)",
		alert.ProductName,
		alert.CurrentPrice,
		alert.Currency,
		alert.Retailer,
		alert.TargetPrice,
		alert.Currency,
	)
	if alert.URL != "" {
		text += "\n" + alert.URL
	}

	msg, err := n.bot.Send(tgbotapi.NewMessage(n.chatID, text))
	if err != nil {
		return "", fmt.Errorf("can't send alert message: %w", err)
	}

	return strconv.Itoa(msg.MessageID), nil
}
