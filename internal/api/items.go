package api

import (
	"net/http"
	"net/url"
	"time"

	"github.com/Kerhoff/storehouse/internal/models"
	"github.com/Kerhoff/storehouse/internal/patch"
	"github.com/Kerhoff/storehouse/internal/repository"
)

type itemResponse struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	Description *string    `json:"description"`
	Unit        string     `json:"unit"`
	IsAvailable bool       `json:"is_available"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

func newItemResponse(i *models.Item) itemResponse {
	return itemResponse{
		ID:          i.ID,
		Name:        i.Name,
		Category:    i.Category,
		Description: i.Description,
		Unit:        i.Unit,
		IsAvailable: i.IsAvailable,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

type itemCreateRequest struct {
	Name        string  `json:"name" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Description *string `json:"description"`
	Unit        string  `json:"unit" validate:"required"`
	IsAvailable *bool   `json:"is_available"`
}

func (req itemCreateRequest) toModel(*models.User) (*models.Item, error) {
	return &models.Item{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Unit:        req.Unit,
		IsAvailable: boolOr(req.IsAvailable, true),
	}, nil
}

type itemUpdateRequest struct {
	Name        patch.Field[string] `json:"name"`
	Category    patch.Field[string] `json:"category"`
	Description patch.Field[string] `json:"description"`
	Unit        patch.Field[string] `json:"unit"`
	IsAvailable patch.Field[bool]   `json:"is_available"`
}

func (req itemUpdateRequest) toPatch() (repository.ItemPatch, error) {
	c := &checks{}
	c.text("name", req.Name)
	c.text("category", req.Category)
	c.text("unit", req.Unit)
	c.add(req.IsAvailable.NotNull("is_available"))

	return repository.ItemPatch{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Unit:        req.Unit,
		IsAvailable: req.IsAvailable,
	}, c.err()
}

func itemFilters(q url.Values, page repository.Page, c *checks) repository.ItemFilters {
	return repository.ItemFilters{
		Category:    queryString(q, "category"),
		IsAvailable: queryBool(q, "is_available", c),
		Page:        page,
	}
}

func (s *Server) createItem() http.HandlerFunc {
	return createHandler[models.Item, itemCreateRequest](s, "Item", s.svc.Items.Create, newItemResponse)
}

func (s *Server) listItems() http.HandlerFunc {
	return listHandler(s, "Item", itemFilters, s.svc.Items.List, newItemResponse)
}

func (s *Server) getItem() http.HandlerFunc {
	return getHandler(s, "Item", s.svc.Items.GetByID, newItemResponse)
}

func (s *Server) updateItem() http.HandlerFunc {
	return updateHandler[models.Item, itemUpdateRequest](s, "Item", s.svc.Items.Update, newItemResponse)
}

type inventoryResponse struct {
	ID           int64      `json:"id"`
	ItemID       int64      `json:"item_id"`
	Quantity     float64    `json:"quantity"`
	MinQuantity  float64    `json:"min_quantity"`
	MaxQuantity  *float64   `json:"max_quantity"`
	Location     *string    `json:"location"`
	ExpiryDate   *time.Time `json:"expiry_date"`
	BelowMinimum bool       `json:"below_minimum"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

func newInventoryResponse(i *models.InventoryItem) inventoryResponse {
	return inventoryResponse{
		ID:           i.ID,
		ItemID:       i.ItemID,
		Quantity:     i.Quantity,
		MinQuantity:  i.MinQuantity,
		MaxQuantity:  i.MaxQuantity,
		Location:     i.Location,
		ExpiryDate:   i.ExpiryDate,
		BelowMinimum: i.IsBelowMinimum(),
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

type inventoryCreateRequest struct {
	ItemID      int64      `json:"item_id" validate:"required"`
	Quantity    *float64   `json:"quantity" validate:"required"`
	MinQuantity float64    `json:"min_quantity" validate:"gte=0"`
	MaxQuantity *float64   `json:"max_quantity"`
	Location    *string    `json:"location"`
	ExpiryDate  *time.Time `json:"expiry_date"`
}

func (req inventoryCreateRequest) toModel(*models.User) (*models.InventoryItem, error) {
	return &models.InventoryItem{
		ItemID:      req.ItemID,
		Quantity:    *req.Quantity,
		MinQuantity: req.MinQuantity,
		MaxQuantity: req.MaxQuantity,
		Location:    req.Location,
		ExpiryDate:  req.ExpiryDate,
	}, nil
}

type inventoryUpdateRequest struct {
	Quantity    patch.Field[float64]   `json:"quantity"`
	MinQuantity patch.Field[float64]   `json:"min_quantity"`
	MaxQuantity patch.Field[float64]   `json:"max_quantity"`
	Location    patch.Field[string]    `json:"location"`
	ExpiryDate  patch.Field[time.Time] `json:"expiry_date"`
}

func (req inventoryUpdateRequest) toPatch() (repository.InventoryPatch, error) {
	c := &checks{}
	c.add(req.Quantity.NotNull("quantity"))
	c.add(req.MinQuantity.NotNull("min_quantity"))
	atLeast(c, "min_quantity", req.MinQuantity, 0)

	return repository.InventoryPatch{
		Quantity:    req.Quantity,
		MinQuantity: req.MinQuantity,
		MaxQuantity: req.MaxQuantity,
		Location:    req.Location,
		ExpiryDate:  req.ExpiryDate,
	}, c.err()
}

func inventoryFilters(q url.Values, page repository.Page, c *checks) repository.InventoryFilters {
	return repository.InventoryFilters{
		ItemID:   queryInt64(q, "item_id", c),
		Location: queryString(q, "location"),
		Page:     page,
	}
}

func (s *Server) createInventory() http.HandlerFunc {
	return createHandler[models.InventoryItem, inventoryCreateRequest](s, "Inventory item", s.svc.Inventory.Create, newInventoryResponse)
}

func (s *Server) listInventory() http.HandlerFunc {
	return listHandler(s, "Inventory item", inventoryFilters, s.svc.Inventory.List, newInventoryResponse)
}

func (s *Server) getInventory() http.HandlerFunc {
	return getHandler(s, "Inventory item", s.svc.Inventory.GetByID, newInventoryResponse)
}

func (s *Server) updateInventory() http.HandlerFunc {
	return updateHandler[models.InventoryItem, inventoryUpdateRequest](s, "Inventory item", s.svc.Inventory.Update, newInventoryResponse)
}
