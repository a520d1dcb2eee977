package models

import "time"

// Role is the duty an account holds in the storehouse
type Role string

const (
	RoleAgency           Role = "agency"
	RoleCoordinator      Role = "coordinator"
	RoleRotaManager      Role = "rota_manager"
	RolePackingVolunteer Role = "packing_volunteer"
	RoleDriver           Role = "driver"
	RoleResident         Role = "resident"
	RoleOnlineShopper    Role = "online_shopper"
	RolePhysicalShopper  Role = "physical_shopper"
)

// Roles lists every known role.
var Roles = []Role{
	RoleAgency, RoleCoordinator, RoleRotaManager, RolePackingVolunteer,
	RoleDriver, RoleResident, RoleOnlineShopper, RolePhysicalShopper,
}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// User represents an account that can sign in to the API
type User struct {
	ID             int64      `db:"id"`
	Email          string     `db:"email"`
	HashedPassword string     `db:"hashed_password"`
	FullName       string     `db:"full_name"`
	Role           Role       `db:"role"`
	Phone          *string    `db:"phone"`
	IsActive       bool       `db:"is_active"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      *time.Time `db:"updated_at"`
}

// HasRole returns true if the user holds any of the given roles
func (u *User) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}
