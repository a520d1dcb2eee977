package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/Kerhoff/storehouse/internal/models"
	"github.com/Kerhoff/storehouse/internal/repository"
)

const itemColumns = `id, name, category, description, unit, is_available, created_at, updated_at`

type itemRepository struct {
	db *sqlx.DB
}

// NewItemRepository creates a new catalog item repository
func NewItemRepository(db *sqlx.DB) repository.ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	query := `
		INSERT INTO items (name, category, description, unit, is_available)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + itemColumns

	return insert[models.Item](ctx, r.db, query, "item",
		item.Name,
		item.Category,
		item.Description,
		item.Unit,
		item.IsAvailable,
	)
}

func (r *itemRepository) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	return getByID[models.Item](ctx, r.db, "items", itemColumns, id, "item")
}

func (r *itemRepository) List(ctx context.Context, filters repository.ItemFilters) ([]*models.Item, error) {
	w := &whereClause{}
	eqIf(w, "category", filters.Category)
	eqIf(w, "is_available", filters.IsAvailable)

	return list[models.Item](ctx, r.db, "items", itemColumns, w, filters.Page, "items")
}

func (r *itemRepository) Update(ctx context.Context, id int64, p repository.ItemPatch) (*models.Item, error) {
	s := &setClause{}
	setField(s, "name", p.Name)
	setField(s, "category", p.Category)
	setField(s, "description", p.Description)
	setField(s, "unit", p.Unit)
	setField(s, "is_available", p.IsAvailable)

	return update[models.Item](ctx, r.db, "items", itemColumns, s, true, id, "item")
}

const inventoryColumns = `id, item_id, quantity, min_quantity, max_quantity, location, expiry_date, created_at, updated_at`

type inventoryRepository struct {
	db *sqlx.DB
}

// NewInventoryRepository creates a new stock record repository
func NewInventoryRepository(db *sqlx.DB) repository.InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) Create(ctx context.Context, inv *models.InventoryItem) (*models.InventoryItem, error) {
	query := `
		INSERT INTO inventory_items (item_id, quantity, min_quantity, max_quantity, location, expiry_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + inventoryColumns

	return insert[models.InventoryItem](ctx, r.db, query, "inventory item",
		inv.ItemID,
		inv.Quantity,
		inv.MinQuantity,
		inv.MaxQuantity,
		inv.Location,
		inv.ExpiryDate,
	)
}

func (r *inventoryRepository) GetByID(ctx context.Context, id int64) (*models.InventoryItem, error) {
	return getByID[models.InventoryItem](ctx, r.db, "inventory_items", inventoryColumns, id, "inventory item")
}

func (r *inventoryRepository) List(ctx context.Context, filters repository.InventoryFilters) ([]*models.InventoryItem, error) {
	w := &whereClause{}
	eqIf(w, "item_id", filters.ItemID)
	eqIf(w, "location", filters.Location)

	return list[models.InventoryItem](ctx, r.db, "inventory_items", inventoryColumns, w, filters.Page, "inventory items")
}

func (r *inventoryRepository) Update(ctx context.Context, id int64, p repository.InventoryPatch) (*models.InventoryItem, error) {
	s := &setClause{}
	setField(s, "quantity", p.Quantity)
	setField(s, "min_quantity", p.MinQuantity)
	setField(s, "max_quantity", p.MaxQuantity)
	setField(s, "location", p.Location)
	setField(s, "expiry_date", p.ExpiryDate)

	return update[models.InventoryItem](ctx, r.db, "inventory_items", inventoryColumns, s, true, id, "inventory item")
}
