package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/storehouse/internal/models"
)

// sender is the part of the bot API used for delivery
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier posts communications to a Telegram chat
type Notifier struct {
	api    sender
	chatID int64
	logger *logrus.Logger
}

// NewNotifier authorizes against the Bot API and returns a notifier that
// posts to chatID.
func NewNotifier(token string, chatID int64, logger *logrus.Logger) (*Notifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	logger.Infof("Authorized on account %s", api.Self.UserName)

	return &Notifier{
		api:    api,
		chatID: chatID,
		logger: logger,
	}, nil
}

// Notify sends the communication as a single chat message.
func (n *Notifier) Notify(ctx context.Context, c *models.Communication) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(n.chatID, FormatMessage(c))
	msg.ParseMode = tgbotapi.ModeMarkdown

	sent, err := n.api.Send(msg)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	n.logger.WithFields(logrus.Fields{
		"chat_id":          n.chatID,
		"message_id":       sent.MessageID,
		"communication_id": c.ID,
	}).Debug("Communication posted to Telegram")

	return nil
}

// FormatMessage renders a communication as Markdown
func FormatMessage(c *models.Communication) string {
	var b strings.Builder

	b.WriteString("*")
	b.WriteString(tgbotapi.EscapeText(tgbotapi.ModeMarkdown, c.Subject))
	b.WriteString("*\n\n")
	b.WriteString(tgbotapi.EscapeText(tgbotapi.ModeMarkdown, c.Message))
	b.WriteString("\n\n_To: ")
	b.WriteString(tgbotapi.EscapeText(tgbotapi.ModeMarkdown, c.RecipientType))
	if n := len(c.RecipientIDs); n > 0 {
		fmt.Fprintf(&b, " (%d recipients)", n)
	}
	b.WriteString("_")

	return b.String()
}
