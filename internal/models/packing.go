package models

import "time"

// PackingStatus is shared by packing lists and packing sessions
type PackingStatus string

const (
	PackingStatusScheduled  PackingStatus = "scheduled"
	PackingStatusInProgress PackingStatus = "in_progress"
	PackingStatusCompleted  PackingStatus = "completed"
	PackingStatusCancelled  PackingStatus = "cancelled"
)

// Valid reports whether s is a known packing status
func (s PackingStatus) Valid() bool {
	switch s {
	case PackingStatusScheduled, PackingStatusInProgress, PackingStatusCompleted, PackingStatusCancelled:
		return true
	}
	return false
}

// PackingList is a planned batch of boxes for a week
type PackingList struct {
	ID         int64         `db:"id"`
	WeekStart  time.Time     `db:"week_start"`
	WeekEnd    time.Time     `db:"week_end"`
	TotalBoxes int           `db:"total_boxes"`
	Status     PackingStatus `db:"status"`
	CreatedAt  time.Time     `db:"created_at"`
	UpdatedAt  *time.Time    `db:"updated_at"`
}

// PackingListItem is one line of a packing list
type PackingListItem struct {
	ID                  int64     `db:"id"`
	PackingListID       int64     `db:"packing_list_id"`
	ItemID              int64     `db:"item_id"`
	QuantityPerBox      float64   `db:"quantity_per_box"`
	TotalQuantityNeeded float64   `db:"total_quantity_needed"`
	CreatedAt           time.Time `db:"created_at"`
}

// PackingSession is the scheduled event at which volunteers assemble boxes
type PackingSession struct {
	ID            int64         `db:"id"`
	PackingListID int64         `db:"packing_list_id"`
	ScheduledDate time.Time     `db:"scheduled_date"`
	Status        PackingStatus `db:"status"`
	Notes         *string       `db:"notes"`
	CreatedAt     time.Time     `db:"created_at"`
	UpdatedAt     *time.Time    `db:"updated_at"`
}

// VolunteerAssignment places a user on a packing session
type VolunteerAssignment struct {
	ID               int64     `db:"id"`
	PackingSessionID int64     `db:"packing_session_id"`
	UserID           int64     `db:"user_id"`
	Role             string    `db:"role"`
	Confirmed        bool      `db:"confirmed"`
	Notes            *string   `db:"notes"`
	CreatedAt        time.Time `db:"created_at"`
}
