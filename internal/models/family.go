package models

import "time"

// FamilyStatus represents whether a family is currently being served
type FamilyStatus string

const (
	FamilyStatusActive    FamilyStatus = "active"
	FamilyStatusInactive  FamilyStatus = "inactive"
	FamilyStatusTemporary FamilyStatus = "temporary"
)

// Valid reports whether s is a known family status
func (s FamilyStatus) Valid() bool {
	switch s {
	case FamilyStatusActive, FamilyStatusInactive, FamilyStatusTemporary:
		return true
	}
	return false
}

// Family represents a served household belonging to one agency
type Family struct {
	ID                  int64        `db:"id"`
	AgencyID            int64        `db:"agency_id"`
	FamilyName          string       `db:"family_name"`
	ContactPerson       string       `db:"contact_person"`
	Phone               *string      `db:"phone"`
	Address             *string      `db:"address"`
	FamilySize          int          `db:"family_size"`
	SpecialRequirements *string      `db:"special_requirements"`
	Status              FamilyStatus `db:"status"`
	CreatedAt           time.Time    `db:"created_at"`
	UpdatedAt           *time.Time   `db:"updated_at"`
}

// FoodBox is one assembled parcel for one family.
// Status is free text (packed, collected, delivered).
type FoodBox struct {
	ID               int64      `db:"id"`
	FamilyID         int64      `db:"family_id"`
	PackingSessionID int64      `db:"packing_session_id"`
	BoxNumber        string     `db:"box_number"`
	Status           string     `db:"status"`
	CollectedAt      *time.Time `db:"collected_at"`
	CollectedBy      *string    `db:"collected_by"`
	Notes            *string    `db:"notes"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        *time.Time `db:"updated_at"`
}

// DefaultFoodBoxStatus is the status a new food box starts in
const DefaultFoodBoxStatus = "packed"
