package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/Kerhoff/storehouse/internal/models"
	"github.com/Kerhoff/storehouse/internal/repository"
)

const orderColumns = `id, order_type, supplier, order_date, delivery_date, status, total_cost,
	notes, created_by, created_at, updated_at`

type orderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new purchase order repository
func NewOrderRepository(db *sqlx.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	query := `
		INSERT INTO orders (order_type, supplier, order_date, delivery_date, status, total_cost, notes, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + orderColumns

	status := order.Status
	if status == "" {
		status = models.OrderStatusPending
	}

	return insert[models.Order](ctx, r.db, query, "order",
		order.OrderType,
		order.Supplier,
		order.OrderDate,
		order.DeliveryDate,
		status,
		order.TotalCost,
		order.Notes,
		order.CreatedBy,
	)
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	return getByID[models.Order](ctx, r.db, "orders", orderColumns, id, "order")
}

func (r *orderRepository) List(ctx context.Context, filters repository.OrderFilters) ([]*models.Order, error) {
	w := &whereClause{}
	eqIf(w, "order_type", filters.OrderType)
	eqIf(w, "status", filters.Status)

	return list[models.Order](ctx, r.db, "orders", orderColumns, w, filters.Page, "orders")
}

func (r *orderRepository) Update(ctx context.Context, id int64, p repository.OrderPatch) (*models.Order, error) {
	s := &setClause{}
	setField(s, "order_type", p.OrderType)
	setField(s, "supplier", p.Supplier)
	setField(s, "order_date", p.OrderDate)
	setField(s, "delivery_date", p.DeliveryDate)
	setField(s, "status", p.Status)
	setField(s, "total_cost", p.TotalCost)
	setField(s, "notes", p.Notes)

	return update[models.Order](ctx, r.db, "orders", orderColumns, s, true, id, "order")
}

func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "orders", id, "order")
}

const orderItemColumns = `id, order_id, item_id, quantity, unit_price, total_price, notes, created_at`

type orderItemRepository struct {
	db *sqlx.DB
}

// NewOrderItemRepository creates a new purchase order line repository
func NewOrderItemRepository(db *sqlx.DB) repository.OrderItemRepository {
	return &orderItemRepository{db: db}
}

func (r *orderItemRepository) Create(ctx context.Context, line *models.OrderItem) (*models.OrderItem, error) {
	query := `
		INSERT INTO order_items (order_id, item_id, quantity, unit_price, total_price, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + orderItemColumns

	return insert[models.OrderItem](ctx, r.db, query, "order item",
		line.OrderID,
		line.ItemID,
		line.Quantity,
		line.UnitPrice,
		line.TotalPrice,
		line.Notes,
	)
}

func (r *orderItemRepository) GetByID(ctx context.Context, id int64) (*models.OrderItem, error) {
	return getByID[models.OrderItem](ctx, r.db, "order_items", orderItemColumns, id, "order item")
}

func (r *orderItemRepository) List(ctx context.Context, filters repository.OrderItemFilters) ([]*models.OrderItem, error) {
	w := &whereClause{}
	eqIf(w, "order_id", filters.OrderID)

	return list[models.OrderItem](ctx, r.db, "order_items", orderItemColumns, w, filters.Page, "order items")
}

func (r *orderItemRepository) Update(ctx context.Context, id int64, p repository.OrderItemPatch) (*models.OrderItem, error) {
	s := &setClause{}
	setField(s, "quantity", p.Quantity)
	setField(s, "unit_price", p.UnitPrice)
	setField(s, "total_price", p.TotalPrice)
	setField(s, "notes", p.Notes)

	return update[models.OrderItem](ctx, r.db, "order_items", orderItemColumns, s, false, id, "order item")
}

func (r *orderItemRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "order_items", id, "order item")
}
