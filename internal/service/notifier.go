package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/storehouse/internal/models"
)

// LogNotifier writes communications to the log. Used when no chat
// integration is configured.
type LogNotifier struct {
	logger *logrus.Logger
}

// NewLogNotifier creates a notifier that only logs
func NewLogNotifier(logger *logrus.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, c *models.Communication) error {
	n.logger.WithFields(logrus.Fields{
		"communication_id": c.ID,
		"subject":          c.Subject,
		"recipient_type":   c.RecipientType,
		"recipient_ids":    []int64(c.RecipientIDs),
	}).Info("Communication dispatched")
	return nil
}
