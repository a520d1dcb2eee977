package models

import "time"

// Item is an entry in the storehouse catalog
type Item struct {
	ID          int64      `db:"id"`
	Name        string     `db:"name"`
	Category    string     `db:"category"` // food, hygiene, special
	Description *string    `db:"description"`
	Unit        string     `db:"unit"`
	IsAvailable bool       `db:"is_available"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at"`
}

// InventoryItem is a stock record for a catalog item
type InventoryItem struct {
	ID          int64      `db:"id"`
	ItemID      int64      `db:"item_id"`
	Quantity    float64    `db:"quantity"`
	MinQuantity float64    `db:"min_quantity"`
	MaxQuantity *float64   `db:"max_quantity"`
	Location    *string    `db:"location"`
	ExpiryDate  *time.Time `db:"expiry_date"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at"`
}

// IsBelowMinimum returns true if the stock has dropped under its threshold
func (i *InventoryItem) IsBelowMinimum() bool {
	return i.Quantity < i.MinQuantity
}
