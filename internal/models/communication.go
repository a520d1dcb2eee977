package models

import (
	"time"

	"github.com/lib/pq"
)

// Communication is an outbound message to agencies or volunteers
type Communication struct {
	ID            int64         `db:"id"`
	Subject       string        `db:"subject"`
	Message       string        `db:"message"`
	RecipientType string        `db:"recipient_type"` // agency, volunteer, all
	RecipientIDs  pq.Int64Array `db:"recipient_ids"`
	SentAt        *time.Time    `db:"sent_at"`
	CreatedBy     int64         `db:"created_by"`
	CreatedAt     time.Time     `db:"created_at"`
}

// IsSent returns true if the communication has been dispatched
func (c *Communication) IsSent() bool {
	return c.SentAt != nil
}

// CommunicationTemplate is a reusable subject/message pair
type CommunicationTemplate struct {
	ID                int64      `db:"id"`
	Name              string     `db:"name"`
	Subject           string     `db:"subject"`
	Message           string     `db:"message"`
	RecipientType     string     `db:"recipient_type"`
	CommunicationType string     `db:"communication_type"`
	IsActive          bool       `db:"is_active"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         *time.Time `db:"updated_at"`
}
