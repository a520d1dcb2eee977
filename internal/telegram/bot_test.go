package telegram

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kerhoff/storehouse/internal/models"
	"github.com/Kerhoff/storehouse/pkg/logger"
)

type fakeSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.err != nil {
		return tgbotapi.Message{}, f.err
	}
	f.sent = append(f.sent, c)
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func TestFormatMessage(t *testing.T) {
	text := FormatMessage(&models.Communication{
		Subject:       "Saturday packing",
		Message:       "Doors open at 9",
		RecipientType: "packing_volunteers",
		RecipientIDs:  pq.Int64Array{3, 4},
	})

	assert.Equal(t, "*Saturday packing*\n\nDoors open at 9\n\n_To: packing\\_volunteers (2 recipients)_", text)
}

func TestNotifier_Notify(t *testing.T) {
	api := &fakeSender{}
	n := &Notifier{api: api, chatID: -100, logger: logger.Discard()}

	err := n.Notify(context.Background(), &models.Communication{ID: 1, Subject: "Hi", Message: "There", RecipientType: "all"})
	require.NoError(t, err)
	require.Len(t, api.sent, 1)

	msg, ok := api.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(-100), msg.ChatID)
	assert.Equal(t, tgbotapi.ModeMarkdown, msg.ParseMode)
}

func TestNotifier_NotifyError(t *testing.T) {
	n := &Notifier{api: &fakeSender{err: errors.New("boom")}, chatID: 1, logger: logger.Discard()}

	err := n.Notify(context.Background(), &models.Communication{Subject: "s", Message: "m"})
	assert.ErrorContains(t, err, "failed to send message")
}

func TestNotifier_CancelledContext(t *testing.T) {
	api := &fakeSender{}
	n := &Notifier{api: api, chatID: 1, logger: logger.Discard()}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, n.Notify(ctx, &models.Communication{}), context.Canceled)
	assert.Empty(t, api.sent)
}
