package models

import "time"

// Rota is a recurring volunteer duty schedule for a quarter
type Rota struct {
	ID           int64      `db:"id"`
	RotaType     string     `db:"rota_type"` // packing, hygiene
	QuarterStart time.Time  `db:"quarter_start"`
	QuarterEnd   time.Time  `db:"quarter_end"`
	IsActive     bool       `db:"is_active"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at"`
}

// RotaAssignment places a user on a rota for one week
type RotaAssignment struct {
	ID        int64     `db:"id"`
	RotaID    int64     `db:"rota_id"`
	UserID    int64     `db:"user_id"`
	WeekStart time.Time `db:"week_start"`
	WeekEnd   time.Time `db:"week_end"`
	Role      string    `db:"role"`
	Confirmed bool      `db:"confirmed"`
	Notes     *string   `db:"notes"`
	CreatedAt time.Time `db:"created_at"`
}
