package api

import (
	"net/http"
	"net/url"
	"time"

	"github.com/Kerhoff/storehouse/internal/models"
	"github.com/Kerhoff/storehouse/internal/patch"
	"github.com/Kerhoff/storehouse/internal/repository"
)

type orderResponse struct {
	ID           int64              `json:"id"`
	OrderType    string             `json:"order_type"`
	Supplier     string             `json:"supplier"`
	OrderDate    time.Time          `json:"order_date"`
	DeliveryDate *time.Time         `json:"delivery_date"`
	Status       models.OrderStatus `json:"status"`
	TotalCost    *float64           `json:"total_cost"`
	Notes        *string            `json:"notes"`
	CreatedBy    int64              `json:"created_by"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    *time.Time         `json:"updated_at"`
}

func newOrderResponse(o *models.Order) orderResponse {
	return orderResponse{
		ID:           o.ID,
		OrderType:    o.OrderType,
		Supplier:     o.Supplier,
		OrderDate:    o.OrderDate,
		DeliveryDate: o.DeliveryDate,
		Status:       o.Status,
		TotalCost:    o.TotalCost,
		Notes:        o.Notes,
		CreatedBy:    o.CreatedBy,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

type orderCreateRequest struct {
	OrderType    string              `json:"order_type" validate:"required"`
	Supplier     string              `json:"supplier" validate:"required"`
	OrderDate    time.Time           `json:"order_date" validate:"required"`
	DeliveryDate *time.Time          `json:"delivery_date"`
	Status       *models.OrderStatus `json:"status"`
	TotalCost    *float64            `json:"total_cost" validate:"omitempty,gte=0"`
	Notes        *string             `json:"notes"`
	CreatedBy    *int64              `json:"created_by"`
}

// toModel defaults created_by to the acting account.
func (req orderCreateRequest) toModel(caller *models.User) (*models.Order, error) {
	o := &models.Order{
		OrderType:    req.OrderType,
		Supplier:     req.Supplier,
		OrderDate:    req.OrderDate,
		DeliveryDate: req.DeliveryDate,
		Status:       models.OrderStatusPending,
		TotalCost:    req.TotalCost,
		Notes:        req.Notes,
	}
	switch {
	case req.CreatedBy != nil:
		o.CreatedBy = *req.CreatedBy
	case caller != nil:
		o.CreatedBy = caller.ID
	}

	c := &checks{}
	if req.Status != nil {
		c.enum("status", true, req.Status.Valid())
		o.Status = *req.Status
	}
	return o, c.err()
}

type orderUpdateRequest struct {
	OrderType    patch.Field[string]             `json:"order_type"`
	Supplier     patch.Field[string]             `json:"supplier"`
	OrderDate    patch.Field[time.Time]          `json:"order_date"`
	DeliveryDate patch.Field[time.Time]          `json:"delivery_date"`
	Status       patch.Field[models.OrderStatus] `json:"status"`
	TotalCost    patch.Field[float64]            `json:"total_cost"`
	Notes        patch.Field[string]             `json:"notes"`
}

func (req orderUpdateRequest) toPatch() (repository.OrderPatch, error) {
	c := &checks{}
	c.text("order_type", req.OrderType)
	c.text("supplier", req.Supplier)
	c.add(req.OrderDate.NotNull("order_date"))
	c.add(req.Status.NotNull("status"))
	c.enum("status", req.Status.HasValue(), req.Status.Value.Valid())
	atLeast(c, "total_cost", req.TotalCost, 0)

	return repository.OrderPatch{
		OrderType:    req.OrderType,
		Supplier:     req.Supplier,
		OrderDate:    req.OrderDate,
		DeliveryDate: req.DeliveryDate,
		Status:       req.Status,
		TotalCost:    req.TotalCost,
		Notes:        req.Notes,
	}, c.err()
}

func orderFilters(q url.Values, page repository.Page, c *checks) repository.OrderFilters {
	return repository.OrderFilters{
		OrderType: queryString(q, "order_type"),
		Status:    queryEnum(q, "status", models.OrderStatus.Valid, c),
		Page:      page,
	}
}

func (s *Server) createOrder() http.HandlerFunc {
	return createHandler[models.Order, orderCreateRequest](s, "Order", s.svc.Orders.Create, newOrderResponse)
}

func (s *Server) listOrders() http.HandlerFunc {
	return listHandler(s, "Order", orderFilters, s.svc.Orders.List, newOrderResponse)
}

func (s *Server) getOrder() http.HandlerFunc {
	return getHandler(s, "Order", s.svc.Orders.GetByID, newOrderResponse)
}

func (s *Server) updateOrder() http.HandlerFunc {
	return updateHandler[models.Order, orderUpdateRequest](s, "Order", s.svc.Orders.Update, newOrderResponse)
}

func (s *Server) deleteOrder() http.HandlerFunc {
	return deleteHandler(s, "Order", s.svc.Orders.Delete)
}

type orderItemResponse struct {
	ID         int64     `json:"id"`
	OrderID    int64     `json:"order_id"`
	ItemID     int64     `json:"item_id"`
	Quantity   float64   `json:"quantity"`
	UnitPrice  *float64  `json:"unit_price"`
	TotalPrice *float64  `json:"total_price"`
	Notes      *string   `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
}

func newOrderItemResponse(i *models.OrderItem) orderItemResponse {
	return orderItemResponse{
		ID:         i.ID,
		OrderID:    i.OrderID,
		ItemID:     i.ItemID,
		Quantity:   i.Quantity,
		UnitPrice:  i.UnitPrice,
		TotalPrice: i.TotalPrice,
		Notes:      i.Notes,
		CreatedAt:  i.CreatedAt,
	}
}

type orderItemCreateRequest struct {
	OrderID    int64    `json:"order_id" validate:"required"`
	ItemID     int64    `json:"item_id" validate:"required"`
	Quantity   float64  `json:"quantity" validate:"gt=0"`
	UnitPrice  *float64 `json:"unit_price" validate:"omitempty,gte=0"`
	TotalPrice *float64 `json:"total_price" validate:"omitempty,gte=0"`
	Notes      *string  `json:"notes"`
}

func (req orderItemCreateRequest) toModel(*models.User) (*models.OrderItem, error) {
	return &models.OrderItem{
		OrderID:    req.OrderID,
		ItemID:     req.ItemID,
		Quantity:   req.Quantity,
		UnitPrice:  req.UnitPrice,
		TotalPrice: req.TotalPrice,
		Notes:      req.Notes,
	}, nil
}

type orderItemUpdateRequest struct {
	Quantity   patch.Field[float64] `json:"quantity"`
	UnitPrice  patch.Field[float64] `json:"unit_price"`
	TotalPrice patch.Field[float64] `json:"total_price"`
	Notes      patch.Field[string]  `json:"notes"`
}

func (req orderItemUpdateRequest) toPatch() (repository.OrderItemPatch, error) {
	c := &checks{}
	c.add(req.Quantity.NotNull("quantity"))
	greaterThan(c, "quantity", req.Quantity, 0)
	atLeast(c, "unit_price", req.UnitPrice, 0)
	atLeast(c, "total_price", req.TotalPrice, 0)

	return repository.OrderItemPatch{
		Quantity:   req.Quantity,
		UnitPrice:  req.UnitPrice,
		TotalPrice: req.TotalPrice,
		Notes:      req.Notes,
	}, c.err()
}

func orderItemFilters(q url.Values, page repository.Page, c *checks) repository.OrderItemFilters {
	return repository.OrderItemFilters{
		OrderID: queryInt64(q, "order_id", c),
		Page:    page,
	}
}

func (s *Server) createOrderItem() http.HandlerFunc {
	return createHandler[models.OrderItem, orderItemCreateRequest](s, "Order item", s.svc.OrderItems.Create, newOrderItemResponse)
}

func (s *Server) listOrderItems() http.HandlerFunc {
	return listHandler(s, "Order item", orderItemFilters, s.svc.OrderItems.List, newOrderItemResponse)
}

func (s *Server) getOrderItem() http.HandlerFunc {
	return getHandler(s, "Order item", s.svc.OrderItems.GetByID, newOrderItemResponse)
}

func (s *Server) updateOrderItem() http.HandlerFunc {
	return updateHandler[models.OrderItem, orderItemUpdateRequest](s, "Order item", s.svc.OrderItems.Update, newOrderItemResponse)
}

func (s *Server) deleteOrderItem() http.HandlerFunc {
	return deleteHandler(s, "Order item", s.svc.OrderItems.Delete)
}
