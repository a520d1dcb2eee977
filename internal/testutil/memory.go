package testutil

import (
	"context"
	"time"

	"github.com/Kerhoff/storehouse/internal/models"
	"github.com/Kerhoff/storehouse/internal/repository"
)

// Memory bundles in-memory repositories that share reference checks.
type Memory struct {
	Users                  *Users
	Agencies               *Agencies
	Families               *Families
	Items                  *Items
	Inventory              *Inventory
	WeeklyRequirements     *WeeklyRequirements
	PackingLists           *PackingLists
	PackingListItems       *PackingListItems
	PackingSessions        *PackingSessions
	VolunteerAssignments   *VolunteerAssignments
	FoodBoxes              *FoodBoxes
	Orders                 *Orders
	OrderItems             *OrderItems
	Rotas                  *Rotas
	RotaAssignments        *RotaAssignments
	Communications         *Communications
	CommunicationTemplates *CommunicationTemplates
}

// NewMemory returns empty in-memory repositories.
func NewMemory() *Memory {
	m := &Memory{
		Users:          &Users{s: newStore("user", func(u *models.User) *int64 { return &u.ID })},
		Agencies:       &Agencies{s: newStore("agency", func(a *models.Agency) *int64 { return &a.ID })},
		Items:          &Items{s: newStore("item", func(i *models.Item) *int64 { return &i.ID })},
		PackingLists:   &PackingLists{s: newStore("packing list", func(p *models.PackingList) *int64 { return &p.ID })},
		Orders:         &Orders{s: newStore("order", func(o *models.Order) *int64 { return &o.ID })},
		Communications: &Communications{s: newStore("communication", func(c *models.Communication) *int64 { return &c.ID })},
		Rotas:          &Rotas{s: newStore("rota", func(r *models.Rota) *int64 { return &r.ID })},
		CommunicationTemplates: &CommunicationTemplates{
			s: newStore("communication template", func(t *models.CommunicationTemplate) *int64 { return &t.ID }),
		},
	}
	m.Families = &Families{
		s:        newStore("family", func(f *models.Family) *int64 { return &f.ID }),
		agencies: m.Agencies,
	}
	m.Inventory = &Inventory{
		s:     newStore("inventory item", func(i *models.InventoryItem) *int64 { return &i.ID }),
		items: m.Items,
	}
	m.PackingListItems = &PackingListItems{
		s:     newStore("packing list item", func(p *models.PackingListItem) *int64 { return &p.ID }),
		lists: m.PackingLists,
		items: m.Items,
	}
	m.OrderItems = &OrderItems{
		s:      newStore("order item", func(o *models.OrderItem) *int64 { return &o.ID }),
		orders: m.Orders,
		items:  m.Items,
	}
	m.WeeklyRequirements = &WeeklyRequirements{
		s:        newStore("weekly requirement", func(w *models.WeeklyRequirement) *int64 { return &w.ID }),
		agencies: m.Agencies,
	}
	m.PackingSessions = &PackingSessions{
		s:     newStore("packing session", func(p *models.PackingSession) *int64 { return &p.ID }),
		lists: m.PackingLists,
	}
	m.VolunteerAssignments = &VolunteerAssignments{
		s:        newStore("volunteer assignment", func(v *models.VolunteerAssignment) *int64 { return &v.ID }),
		sessions: m.PackingSessions,
		users:    m.Users,
	}
	m.FoodBoxes = &FoodBoxes{
		s:        newStore("food box", func(b *models.FoodBox) *int64 { return &b.ID }),
		families: m.Families,
		sessions: m.PackingSessions,
	}
	m.PackingLists.lines = m.PackingListItems
	m.PackingLists.sessions = m.PackingSessions
	m.Orders.lines = m.OrderItems
	m.RotaAssignments = &RotaAssignments{
		s:     newStore("rota assignment", func(a *models.RotaAssignment) *int64 { return &a.ID }),
		rotas: m.Rotas,
		users: m.Users,
	}
	return m
}

func now() *time.Time {
	t := time.Now().UTC()
	return &t
}

// Users is an in-memory repository.UserRepository
type Users struct{ s *store[models.User] }

func (r *Users) Create(_ context.Context, u *models.User) (*models.User, error) {
	if _, taken := r.s.find(func(x *models.User) bool { return x.Email == u.Email }); taken {
		return nil, &repository.ConstraintError{Err: repository.ErrConflict, Detail: "Key (email) already exists."}
	}
	row := *u
	row.CreatedAt = time.Now().UTC()
	return r.s.insert(row), nil
}

func (r *Users) GetByID(_ context.Context, id int64) (*models.User, error) {
	return r.s.get(id)
}

func (r *Users) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := r.s.find(func(x *models.User) bool { return x.Email == email }); ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (r *Users) List(_ context.Context, f repository.UserFilters) ([]*models.User, error) {
	return r.s.list(func(u *models.User) bool {
		return eq(f.Role, u.Role) && eq(f.IsActive, u.IsActive)
	}, f.Page), nil
}

func (r *Users) Update(_ context.Context, id int64, p repository.UserPatch) (*models.User, error) {
	return patchRow(r.s, id, p, func(u *models.User) {
		if p.Email.HasValue() {
			u.Email = p.Email.Value
		}
		if p.FullName.HasValue() {
			u.FullName = p.FullName.Value
		}
		if p.Phone.Present {
			u.Phone = p.Phone.Ptr()
		}
		if p.Role.HasValue() {
			u.Role = p.Role.Value
		}
		if p.IsActive.HasValue() {
			u.IsActive = p.IsActive.Value
		}
		u.UpdatedAt = now()
	})
}

// Agencies is an in-memory repository.AgencyRepository
type Agencies struct{ s *store[models.Agency] }

func (r *Agencies) Create(_ context.Context, a *models.Agency) (*models.Agency, error) {
	row := *a
	row.CreatedAt = time.Now().UTC()
	return r.s.insert(row), nil
}

func (r *Agencies) GetByID(_ context.Context, id int64) (*models.Agency, error) {
	return r.s.get(id)
}

func (r *Agencies) List(_ context.Context, f repository.AgencyFilters) ([]*models.Agency, error) {
	return r.s.list(func(a *models.Agency) bool { return eq(f.IsActive, a.IsActive) }, f.Page), nil
}

func (r *Agencies) Update(_ context.Context, id int64, p repository.AgencyPatch) (*models.Agency, error) {
	return patchRow(r.s, id, p, func(a *models.Agency) {
		if p.Name.HasValue() {
			a.Name = p.Name.Value
		}
		if p.ContactPerson.HasValue() {
			a.ContactPerson = p.ContactPerson.Value
		}
		if p.Email.HasValue() {
			a.Email = p.Email.Value
		}
		if p.Phone.Present {
			a.Phone = p.Phone.Ptr()
		}
		if p.Address.Present {
			a.Address = p.Address.Ptr()
		}
		if p.IsActive.HasValue() {
			a.IsActive = p.IsActive.Value
		}
		a.UpdatedAt = now()
	})
}

// Families is an in-memory repository.FamilyRepository
type Families struct {
	s        *store[models.Family]
	agencies *Agencies
}

func (r *Families) Create(_ context.Context, f *models.Family) (*models.Family, error) {
	if !r.agencies.s.exists(f.AgencyID) {
		return nil, invalidReference("agency_id", f.AgencyID)
	}
	row := *f
	if row.Status == "" {
		row.Status = models.FamilyStatusActive
	}
	row.CreatedAt = time.Now().UTC()
	return r.s.insert(row), nil
}

func (r *Families) GetByID(_ context.Context, id int64) (*models.Family, error) {
	return r.s.get(id)
}

func (r *Families) List(_ context.Context, f repository.FamilyFilters) ([]*models.Family, error) {
	return r.s.list(func(x *models.Family) bool {
		return eq(f.AgencyID, x.AgencyID) && eq(f.Status, x.Status)
	}, f.Page), nil
}

func (r *Families) Update(_ context.Context, id int64, p repository.FamilyPatch) (*models.Family, error) {
	return patchRow(r.s, id, p, func(f *models.Family) {
		if p.FamilyName.HasValue() {
			f.FamilyName = p.FamilyName.Value
		}
		if p.ContactPerson.HasValue() {
			f.ContactPerson = p.ContactPerson.Value
		}
		if p.Phone.Present {
			f.Phone = p.Phone.Ptr()
		}
		if p.Address.Present {
			f.Address = p.Address.Ptr()
		}
		if p.FamilySize.HasValue() {
			f.FamilySize = p.FamilySize.Value
		}
		if p.SpecialRequirements.Present {
			f.SpecialRequirements = p.SpecialRequirements.Ptr()
		}
		if p.Status.HasValue() {
			f.Status = p.Status.Value
		}
		f.UpdatedAt = now()
	})
}

// Items is an in-memory repository.ItemRepository
type Items struct{ s *store[models.Item] }

func (r *Items) Create(_ context.Context, i *models.Item) (*models.Item, error) {
	row := *i
	row.CreatedAt = time.Now().UTC()
	return r.s.insert(row), nil
}

func (r *Items) GetByID(_ context.Context, id int64) (*models.Item, error) {
	return r.s.get(id)
}

func (r *Items) List(_ context.Context, f repository.ItemFilters) ([]*models.Item, error) {
	return r.s.list(func(i *models.Item) bool {
		return eq(f.Category, i.Category) && eq(f.IsAvailable, i.IsAvailable)
	}, f.Page), nil
}

func (r *Items) Update(_ context.Context, id int64, p repository.ItemPatch) (*models.Item, error) {
	return patchRow(r.s, id, p, func(i *models.Item) {
		if p.Name.HasValue() {
			i.Name = p.Name.Value
		}
		if p.Category.HasValue() {
			i.Category = p.Category.Value
		}
		if p.Description.Present {
			i.Description = p.Description.Ptr()
		}
		if p.Unit.HasValue() {
			i.Unit = p.Unit.Value
		}
		if p.IsAvailable.HasValue() {
			i.IsAvailable = p.IsAvailable.Value
		}
		i.UpdatedAt = now()
	})
}

// Inventory is an in-memory repository.InventoryRepository
type Inventory struct {
	s     *store[models.InventoryItem]
	items *Items
}

func (r *Inventory) Create(_ context.Context, inv *models.InventoryItem) (*models.InventoryItem, error) {
	if !r.items.s.exists(inv.ItemID) {
		return nil, invalidReference("item_id", inv.ItemID)
	}
	row := *inv
	row.CreatedAt = time.Now().UTC()
	return r.s.insert(row), nil
}

func (r *Inventory) GetByID(_ context.Context, id int64) (*models.InventoryItem, error) {
	return r.s.get(id)
}

func (r *Inventory) List(_ context.Context, f repository.InventoryFilters) ([]*models.InventoryItem, error) {
	return r.s.list(func(i *models.InventoryItem) bool {
		if f.Location != nil && (i.Location == nil || *i.Location != *f.Location) {
			return false
		}
		return eq(f.ItemID, i.ItemID)
	}, f.Page), nil
}

func (r *Inventory) Update(_ context.Context, id int64, p repository.InventoryPatch) (*models.InventoryItem, error) {
	return patchRow(r.s, id, p, func(i *models.InventoryItem) {
		if p.Quantity.HasValue() {
			i.Quantity = p.Quantity.Value
		}
		if p.MinQuantity.HasValue() {
			i.MinQuantity = p.MinQuantity.Value
		}
		if p.MaxQuantity.Present {
			i.MaxQuantity = p.MaxQuantity.Ptr()
		}
		if p.Location.Present {
			i.Location = p.Location.Ptr()
		}
		if p.ExpiryDate.Present {
			i.ExpiryDate = p.ExpiryDate.Ptr()
		}
		i.UpdatedAt = now()
	})
}

// PackingLists is an in-memory repository.PackingListRepository
type PackingLists struct {
	s        *store[models.PackingList]
	lines    *PackingListItems
	sessions *PackingSessions
}

func (r *PackingLists) Create(_ context.Context, pl *models.PackingList) (*models.PackingList, error) {
	row := *pl
	if row.Status == "" {
		row.Status = models.PackingStatusScheduled
	}
	row.CreatedAt = time.Now().UTC()
	return r.s.insert(row), nil
}

func (r *PackingLists) GetByID(_ context.Context, id int64) (*models.PackingList, error) {
	return r.s.get(id)
}

func (r *PackingLists) List(_ context.Context, f repository.PackingListFilters) ([]*models.PackingList, error) {
	return r.s.list(func(pl *models.PackingList) bool { return eq(f.Status, pl.Status) }, f.Page), nil
}

func (r *PackingLists) Update(_ context.Context, id int64, p repository.PackingListPatch) (*models.PackingList, error) {
	return patchRow(r.s, id, p, func(pl *models.PackingList) {
		if p.TotalBoxes.HasValue() {
			pl.TotalBoxes = p.TotalBoxes.Value
		}
		if p.Status.HasValue() {
			pl.Status = p.Status.Value
		}
		pl.UpdatedAt = now()
	})
}

func (r *PackingLists) Delete(_ context.Context, id int64) error {
	if r.lines.s.has(func(l *models.PackingListItem) bool { return l.PackingListID == id }) {
		return stillReferenced(id, "packing_list_items")
	}
	if r.sessions.s.has(func(ps *models.PackingSession) bool { return ps.PackingListID == id }) {
		return stillReferenced(id, "packing_sessions")
	}
	return r.s.delete(id)
}

// PackingListItems is an in-memory repository.PackingListItemRepository
type PackingListItems struct {
	s     *store[models.PackingListItem]
	lists *PackingLists
	items *Items
}

func (r *PackingListItems) Create(_ context.Context, line *models.PackingListItem) (*models.PackingListItem, error) {
	if !r.lists.s.exists(line.PackingListID) {
		return nil, invalidReference("packing_list_id", line.PackingListID)
	}
	if !r.items.s.exists(line.ItemID) {
		return nil, invalidReference("item_id", line.ItemID)
	}
	row := *line
	row.CreatedAt = time.Now().UTC()
	return r.s.insert(row), nil
}

func (r *PackingListItems) GetByID(_ context.Context, id int64) (*models.PackingListItem, error) {
	return r.s.get(id)
}

func (r *PackingListItems) List(_ context.Context, f repository.PackingListItemFilters) ([]*models.PackingListItem, error) {
	return r.s.list(func(l *models.PackingListItem) bool { return eq(f.PackingListID, l.PackingListID) }, f.Page), nil
}

func (r *PackingListItems) Update(_ context.Context, id int64, p repository.PackingListItemPatch) (*models.PackingListItem, error) {
	return patchRow(r.s, id, p, func(l *models.PackingListItem) {
		if p.QuantityPerBox.HasValue() {
			l.QuantityPerBox = p.QuantityPerBox.Value
		}
		if p.TotalQuantityNeeded.HasValue() {
			l.TotalQuantityNeeded = p.TotalQuantityNeeded.Value
		}
	})
}

func (r *PackingListItems) Delete(_ context.Context, id int64) error {
	return r.s.delete(id)
}

// Orders is an in-memory repository.OrderRepository
type Orders struct {
	s     *store[models.Order]
	lines *OrderItems
}

func (r *Orders) Create(_ context.Context, o *models.Order) (*models.Order, error) {
	row := *o
	if row.Status == "" {
		row.Status = models.OrderStatusPending
	}
	row.CreatedAt = time.Now().UTC()
	return r.s.insert(row), nil
}

func (r *Orders) GetByID(_ context.Context, id int64) (*models.Order, error) {
	return r.s.get(id)
}

func (r *Orders) List(_ context.Context, f repository.OrderFilters) ([]*models.Order, error) {
	return r.s.list(func(o *models.Order) bool {
		return eq(f.OrderType, o.OrderType) && eq(f.Status, o.Status)
	}, f.Page), nil
}

func (r *Orders) Update(_ context.Context, id int64, p repository.OrderPatch) (*models.Order, error) {
	return patchRow(r.s, id, p, func(o *models.Order) {
		if p.OrderType.HasValue() {
			o.OrderType = p.OrderType.Value
		}
		if p.Supplier.HasValue() {
			o.Supplier = p.Supplier.Value
		}
		if p.OrderDate.HasValue() {
			o.OrderDate = p.OrderDate.Value
		}
		if p.DeliveryDate.Present {
			o.DeliveryDate = p.DeliveryDate.Ptr()
		}
		if p.Status.HasValue() {
			o.Status = p.Status.Value
		}
		if p.TotalCost.Present {
			o.TotalCost = p.TotalCost.Ptr()
		}
		if p.Notes.Present {
			o.Notes = p.Notes.Ptr()
		}
		o.UpdatedAt = now()
	})
}

func (r *Orders) Delete(_ context.Context, id int64) error {
	if r.lines.s.has(func(l *models.OrderItem) bool { return l.OrderID == id }) {
		return stillReferenced(id, "order_items")
	}
	return r.s.delete(id)
}

// OrderItems is an in-memory repository.OrderItemRepository
type OrderItems struct {
	s      *store[models.OrderItem]
	orders *Orders
	items  *Items
}

func (r *OrderItems) Create(_ context.Context, line *models.OrderItem) (*models.OrderItem, error) {
	if !r.orders.s.exists(line.OrderID) {
		return nil, invalidReference("order_id", line.OrderID)
	}
	if !r.items.s.exists(line.ItemID) {
		return nil, invalidReference("item_id", line.ItemID)
	}
	row := *line
	row.CreatedAt = time.Now().UTC()
	return r.s.insert(row), nil
}

func (r *OrderItems) GetByID(_ context.Context, id int64) (*models.OrderItem, error) {
	return r.s.get(id)
}

func (r *OrderItems) List(_ context.Context, f repository.OrderItemFilters) ([]*models.OrderItem, error) {
	return r.s.list(func(l *models.OrderItem) bool { return eq(f.OrderID, l.OrderID) }, f.Page), nil
}

func (r *OrderItems) Update(_ context.Context, id int64, p repository.OrderItemPatch) (*models.OrderItem, error) {
	return patchRow(r.s, id, p, func(l *models.OrderItem) {
		if p.Quantity.HasValue() {
			l.Quantity = p.Quantity.Value
		}
		if p.UnitPrice.Present {
			l.UnitPrice = p.UnitPrice.Ptr()
		}
		if p.TotalPrice.Present {
			l.TotalPrice = p.TotalPrice.Ptr()
		}
		if p.Notes.Present {
			l.Notes = p.Notes.Ptr()
		}
	})
}

func (r *OrderItems) Delete(_ context.Context, id int64) error {
	return r.s.delete(id)
}

// Communications is an in-memory repository.CommunicationRepository
type Communications struct{ s *store[models.Communication] }

func (r *Communications) Create(_ context.Context, c *models.Communication) (*models.Communication, error) {
	row := *c
	row.CreatedAt = time.Now().UTC()
	return r.s.insert(row), nil
}

func (r *Communications) GetByID(_ context.Context, id int64) (*models.Communication, error) {
	return r.s.get(id)
}

func (r *Communications) List(_ context.Context, f repository.CommunicationFilters) ([]*models.Communication, error) {
	return r.s.list(func(c *models.Communication) bool { return eq(f.RecipientType, c.RecipientType) }, f.Page), nil
}

func (r *Communications) MarkSent(_ context.Context, id int64, sentAt time.Time) (*models.Communication, error) {
	return r.s.update(id, func(c *models.Communication) {
		if c.SentAt == nil {
			c.SentAt = &sentAt
		}
	})
}
