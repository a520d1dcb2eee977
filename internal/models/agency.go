package models

import "time"

// Agency is a partner organisation requesting food boxes for its families
type Agency struct {
	ID            int64      `db:"id"`
	Name          string     `db:"name"`
	ContactPerson string     `db:"contact_person"`
	Email         string     `db:"email"`
	Phone         *string    `db:"phone"`
	Address       *string    `db:"address"`
	IsActive      bool       `db:"is_active"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     *time.Time `db:"updated_at"`
}

// WeeklyRequirement is an agency's request for boxes in a given week.
// Status is free text (pending, confirmed, packed, collected).
type WeeklyRequirement struct {
	ID              int64      `db:"id"`
	AgencyID        int64      `db:"agency_id"`
	WeekStart       time.Time  `db:"week_start"`
	WeekEnd         time.Time  `db:"week_end"`
	TotalFamilies   int        `db:"total_families"`
	TotalBoxes      int        `db:"total_boxes"`
	SpecialRequests *string    `db:"special_requests"`
	Status          string     `db:"status"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       *time.Time `db:"updated_at"`
}

// DefaultRequirementStatus is the status a new weekly requirement starts in
const DefaultRequirementStatus = "pending"
