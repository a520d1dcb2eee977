package testutil

import (
	"context"
	"sync"

	"github.com/Kerhoff/storehouse/internal/models"
)

// Notifier records every communication it is asked to deliver.
type Notifier struct {
	mu   sync.Mutex
	sent []int64

	// Err, when set, is returned from Notify.
	Err error
}

func (n *Notifier) Notify(_ context.Context, c *models.Communication) error {
	if n.Err != nil {
		return n.Err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, c.ID)
	return nil
}

// Sent returns the IDs of delivered communications in order.
func (n *Notifier) Sent() []int64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]int64(nil), n.sent...)
}
