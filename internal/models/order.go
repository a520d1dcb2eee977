package models

import "time"

// OrderStatus represents the status of a purchase order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is a purchase order placed with a supplier
type Order struct {
	ID           int64       `db:"id"`
	OrderType    string      `db:"order_type"` // weekly, monthly, quarterly, hygiene, special
	Supplier     string      `db:"supplier"`
	OrderDate    time.Time   `db:"order_date"`
	DeliveryDate *time.Time  `db:"delivery_date"`
	Status       OrderStatus `db:"status"`
	TotalCost    *float64    `db:"total_cost"`
	Notes        *string     `db:"notes"`
	CreatedBy    int64       `db:"created_by"`
	CreatedAt    time.Time   `db:"created_at"`
	UpdatedAt    *time.Time  `db:"updated_at"`
}

// OrderItem is one line of a purchase order
type OrderItem struct {
	ID         int64     `db:"id"`
	OrderID    int64     `db:"order_id"`
	ItemID     int64     `db:"item_id"`
	Quantity   float64   `db:"quantity"`
	UnitPrice  *float64  `db:"unit_price"`
	TotalPrice *float64  `db:"total_price"`
	Notes      *string   `db:"notes"`
	CreatedAt  time.Time `db:"created_at"`
}
