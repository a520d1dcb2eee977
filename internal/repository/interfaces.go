package repository

import (
	"context"
	"time"

	"github.com/Kerhoff/storehouse/internal/models"
	"github.com/Kerhoff/storehouse/internal/patch"
)

// UserRepository defines the interface for account data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, filters UserFilters) ([]*models.User, error)
	Update(ctx context.Context, id int64, p UserPatch) (*models.User, error)
}

// AgencyRepository defines the interface for agency data operations
type AgencyRepository interface {
	Create(ctx context.Context, agency *models.Agency) (*models.Agency, error)
	GetByID(ctx context.Context, id int64) (*models.Agency, error)
	List(ctx context.Context, filters AgencyFilters) ([]*models.Agency, error)
	Update(ctx context.Context, id int64, p AgencyPatch) (*models.Agency, error)
}

// FamilyRepository defines the interface for family data operations
type FamilyRepository interface {
	Create(ctx context.Context, family *models.Family) (*models.Family, error)
	GetByID(ctx context.Context, id int64) (*models.Family, error)
	List(ctx context.Context, filters FamilyFilters) ([]*models.Family, error)
	Update(ctx context.Context, id int64, p FamilyPatch) (*models.Family, error)
}

// ItemRepository defines the interface for catalog item operations
type ItemRepository interface {
	Create(ctx context.Context, item *models.Item) (*models.Item, error)
	GetByID(ctx context.Context, id int64) (*models.Item, error)
	List(ctx context.Context, filters ItemFilters) ([]*models.Item, error)
	Update(ctx context.Context, id int64, p ItemPatch) (*models.Item, error)
}

// InventoryRepository defines the interface for stock record operations
type InventoryRepository interface {
	Create(ctx context.Context, inv *models.InventoryItem) (*models.InventoryItem, error)
	GetByID(ctx context.Context, id int64) (*models.InventoryItem, error)
	List(ctx context.Context, filters InventoryFilters) ([]*models.InventoryItem, error)
	Update(ctx context.Context, id int64, p InventoryPatch) (*models.InventoryItem, error)
}

// WeeklyRequirementRepository defines the interface for weekly requirement operations
type WeeklyRequirementRepository interface {
	Create(ctx context.Context, req *models.WeeklyRequirement) (*models.WeeklyRequirement, error)
	GetByID(ctx context.Context, id int64) (*models.WeeklyRequirement, error)
	List(ctx context.Context, filters WeeklyRequirementFilters) ([]*models.WeeklyRequirement, error)
	Update(ctx context.Context, id int64, p WeeklyRequirementPatch) (*models.WeeklyRequirement, error)
}

// PackingListRepository defines the interface for packing list operations
type PackingListRepository interface {
	Create(ctx context.Context, list *models.PackingList) (*models.PackingList, error)
	GetByID(ctx context.Context, id int64) (*models.PackingList, error)
	List(ctx context.Context, filters PackingListFilters) ([]*models.PackingList, error)
	Update(ctx context.Context, id int64, p PackingListPatch) (*models.PackingList, error)
	Delete(ctx context.Context, id int64) error
}

// PackingListItemRepository defines the interface for packing list line operations
type PackingListItemRepository interface {
	Create(ctx context.Context, line *models.PackingListItem) (*models.PackingListItem, error)
	GetByID(ctx context.Context, id int64) (*models.PackingListItem, error)
	List(ctx context.Context, filters PackingListItemFilters) ([]*models.PackingListItem, error)
	Update(ctx context.Context, id int64, p PackingListItemPatch) (*models.PackingListItem, error)
	Delete(ctx context.Context, id int64) error
}

// PackingSessionRepository defines the interface for packing session operations
type PackingSessionRepository interface {
	Create(ctx context.Context, session *models.PackingSession) (*models.PackingSession, error)
	GetByID(ctx context.Context, id int64) (*models.PackingSession, error)
	List(ctx context.Context, filters PackingSessionFilters) ([]*models.PackingSession, error)
	Update(ctx context.Context, id int64, p PackingSessionPatch) (*models.PackingSession, error)
}

// VolunteerAssignmentRepository defines the interface for session staffing operations
type VolunteerAssignmentRepository interface {
	Create(ctx context.Context, a *models.VolunteerAssignment) (*models.VolunteerAssignment, error)
	GetByID(ctx context.Context, id int64) (*models.VolunteerAssignment, error)
	List(ctx context.Context, filters VolunteerAssignmentFilters) ([]*models.VolunteerAssignment, error)
	Update(ctx context.Context, id int64, p VolunteerAssignmentPatch) (*models.VolunteerAssignment, error)
}

// FoodBoxRepository defines the interface for food box operations
type FoodBoxRepository interface {
	Create(ctx context.Context, box *models.FoodBox) (*models.FoodBox, error)
	GetByID(ctx context.Context, id int64) (*models.FoodBox, error)
	List(ctx context.Context, filters FoodBoxFilters) ([]*models.FoodBox, error)
	Update(ctx context.Context, id int64, p FoodBoxPatch) (*models.FoodBox, error)
}

// OrderRepository defines the interface for purchase order operations
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	List(ctx context.Context, filters OrderFilters) ([]*models.Order, error)
	Update(ctx context.Context, id int64, p OrderPatch) (*models.Order, error)
	Delete(ctx context.Context, id int64) error
}

// OrderItemRepository defines the interface for purchase order line operations
type OrderItemRepository interface {
	Create(ctx context.Context, line *models.OrderItem) (*models.OrderItem, error)
	GetByID(ctx context.Context, id int64) (*models.OrderItem, error)
	List(ctx context.Context, filters OrderItemFilters) ([]*models.OrderItem, error)
	Update(ctx context.Context, id int64, p OrderItemPatch) (*models.OrderItem, error)
	Delete(ctx context.Context, id int64) error
}

// RotaRepository defines the interface for rota operations
type RotaRepository interface {
	Create(ctx context.Context, rota *models.Rota) (*models.Rota, error)
	GetByID(ctx context.Context, id int64) (*models.Rota, error)
	List(ctx context.Context, filters RotaFilters) ([]*models.Rota, error)
	Update(ctx context.Context, id int64, p RotaPatch) (*models.Rota, error)
}

// RotaAssignmentRepository defines the interface for rota assignment operations
type RotaAssignmentRepository interface {
	Create(ctx context.Context, a *models.RotaAssignment) (*models.RotaAssignment, error)
	GetByID(ctx context.Context, id int64) (*models.RotaAssignment, error)
	List(ctx context.Context, filters RotaAssignmentFilters) ([]*models.RotaAssignment, error)
	Update(ctx context.Context, id int64, p RotaAssignmentPatch) (*models.RotaAssignment, error)
	Delete(ctx context.Context, id int64) error
}

// CommunicationRepository defines the interface for outbound message operations
type CommunicationRepository interface {
	Create(ctx context.Context, c *models.Communication) (*models.Communication, error)
	GetByID(ctx context.Context, id int64) (*models.Communication, error)
	List(ctx context.Context, filters CommunicationFilters) ([]*models.Communication, error)
	MarkSent(ctx context.Context, id int64, sentAt time.Time) (*models.Communication, error)
}

// CommunicationTemplateRepository defines the interface for template operations
type CommunicationTemplateRepository interface {
	Create(ctx context.Context, t *models.CommunicationTemplate) (*models.CommunicationTemplate, error)
	GetByID(ctx context.Context, id int64) (*models.CommunicationTemplate, error)
	List(ctx context.Context, filters CommunicationTemplateFilters) ([]*models.CommunicationTemplate, error)
	Update(ctx context.Context, id int64, p CommunicationTemplatePatch) (*models.CommunicationTemplate, error)
	Delete(ctx context.Context, id int64) error
}

// DefaultLimit is used when a list request does not carry a limit
const DefaultLimit = 100

// MaxLimit caps the page size a client can request
const MaxLimit = 1000

// Page represents offset/limit pagination
type Page struct {
	Offset int
	Limit  int
}

// UserFilters represents filters for querying accounts
type UserFilters struct {
	Role     *models.Role
	IsActive *bool
	Page
}

// AgencyFilters represents filters for querying agencies
type AgencyFilters struct {
	IsActive *bool
	Page
}

// FamilyFilters represents filters for querying families
type FamilyFilters struct {
	AgencyID *int64
	Status   *models.FamilyStatus
	Page
}

// ItemFilters represents filters for querying catalog items
type ItemFilters struct {
	Category    *string
	IsAvailable *bool
	Page
}

// InventoryFilters represents filters for querying stock records
type InventoryFilters struct {
	ItemID   *int64
	Location *string
	Page
}

// WeeklyRequirementFilters represents filters for querying weekly requirements
type WeeklyRequirementFilters struct {
	AgencyID *int64
	Status   *string
	Page
}

// PackingListFilters represents filters for querying packing lists
type PackingListFilters struct {
	Status *models.PackingStatus
	Page
}

// PackingListItemFilters represents filters for querying packing list lines
type PackingListItemFilters struct {
	PackingListID *int64
	Page
}

// PackingSessionFilters represents filters for querying packing sessions
type PackingSessionFilters struct {
	PackingListID *int64
	Status        *models.PackingStatus
	Page
}

// VolunteerAssignmentFilters represents filters for querying session staffing
type VolunteerAssignmentFilters struct {
	PackingSessionID *int64
	UserID           *int64
	Page
}

// FoodBoxFilters represents filters for querying food boxes
type FoodBoxFilters struct {
	FamilyID         *int64
	PackingSessionID *int64
	Status           *string
	Page
}

// OrderFilters represents filters for querying purchase orders
type OrderFilters struct {
	OrderType *string
	Status    *models.OrderStatus
	Page
}

// OrderItemFilters represents filters for querying purchase order lines
type OrderItemFilters struct {
	OrderID *int64
	Page
}

// RotaFilters represents filters for querying rotas
type RotaFilters struct {
	RotaType *string
	IsActive *bool
	Page
}

// RotaAssignmentFilters represents filters for querying rota assignments
type RotaAssignmentFilters struct {
	RotaID *int64
	UserID *int64
	Page
}

// CommunicationFilters represents filters for querying communications
type CommunicationFilters struct {
	RecipientType *string
	Page
}

// CommunicationTemplateFilters represents filters for querying templates
type CommunicationTemplateFilters struct {
	RecipientType     *string
	CommunicationType *string
	Page
}

// UserPatch holds the account fields a partial update may change
type UserPatch struct {
	Email    patch.Field[string]
	FullName patch.Field[string]
	Phone    patch.Field[string]
	Role     patch.Field[models.Role]
	IsActive patch.Field[bool]
}

// AgencyPatch holds the agency fields a partial update may change
type AgencyPatch struct {
	Name          patch.Field[string]
	ContactPerson patch.Field[string]
	Email         patch.Field[string]
	Phone         patch.Field[string]
	Address       patch.Field[string]
	IsActive      patch.Field[bool]
}

// FamilyPatch holds the family fields a partial update may change
type FamilyPatch struct {
	FamilyName          patch.Field[string]
	ContactPerson       patch.Field[string]
	Phone               patch.Field[string]
	Address             patch.Field[string]
	FamilySize          patch.Field[int]
	SpecialRequirements patch.Field[string]
	Status              patch.Field[models.FamilyStatus]
}

// ItemPatch holds the catalog item fields a partial update may change
type ItemPatch struct {
	Name        patch.Field[string]
	Category    patch.Field[string]
	Description patch.Field[string]
	Unit        patch.Field[string]
	IsAvailable patch.Field[bool]
}

// InventoryPatch holds the stock record fields a partial update may change
type InventoryPatch struct {
	Quantity    patch.Field[float64]
	MinQuantity patch.Field[float64]
	MaxQuantity patch.Field[float64]
	Location    patch.Field[string]
	ExpiryDate  patch.Field[time.Time]
}

// WeeklyRequirementPatch holds the requirement fields a partial update may change
type WeeklyRequirementPatch struct {
	TotalFamilies   patch.Field[int]
	TotalBoxes      patch.Field[int]
	SpecialRequests patch.Field[string]
	Status          patch.Field[string]
}

// PackingListPatch holds the packing list fields a partial update may change
type PackingListPatch struct {
	TotalBoxes patch.Field[int]
	Status     patch.Field[models.PackingStatus]
}

// PackingListItemPatch holds the packing list line fields a partial update may change
type PackingListItemPatch struct {
	QuantityPerBox      patch.Field[float64]
	TotalQuantityNeeded patch.Field[float64]
}

// PackingSessionPatch holds the packing session fields a partial update may change
type PackingSessionPatch struct {
	ScheduledDate patch.Field[time.Time]
	Status        patch.Field[models.PackingStatus]
	Notes         patch.Field[string]
}

// VolunteerAssignmentPatch holds the staffing fields a partial update may change
type VolunteerAssignmentPatch struct {
	Role      patch.Field[string]
	Confirmed patch.Field[bool]
	Notes     patch.Field[string]
}

// FoodBoxPatch holds the food box fields a partial update may change
type FoodBoxPatch struct {
	Status      patch.Field[string]
	CollectedAt patch.Field[time.Time]
	CollectedBy patch.Field[string]
	Notes       patch.Field[string]
}

// OrderPatch holds the purchase order fields a partial update may change
type OrderPatch struct {
	OrderType    patch.Field[string]
	Supplier     patch.Field[string]
	OrderDate    patch.Field[time.Time]
	DeliveryDate patch.Field[time.Time]
	Status       patch.Field[models.OrderStatus]
	TotalCost    patch.Field[float64]
	Notes        patch.Field[string]
}

// OrderItemPatch holds the purchase order line fields a partial update may change
type OrderItemPatch struct {
	Quantity   patch.Field[float64]
	UnitPrice  patch.Field[float64]
	TotalPrice patch.Field[float64]
	Notes      patch.Field[string]
}

// RotaPatch holds the rota fields a partial update may change
type RotaPatch struct {
	QuarterStart patch.Field[time.Time]
	QuarterEnd   patch.Field[time.Time]
	IsActive     patch.Field[bool]
}

// RotaAssignmentPatch holds the rota assignment fields a partial update may change
type RotaAssignmentPatch struct {
	WeekStart patch.Field[time.Time]
	WeekEnd   patch.Field[time.Time]
	Role      patch.Field[string]
	Confirmed patch.Field[bool]
	Notes     patch.Field[string]
}

// CommunicationTemplatePatch holds the template fields a partial update may change
type CommunicationTemplatePatch struct {
	Name              patch.Field[string]
	Subject           patch.Field[string]
	Message           patch.Field[string]
	RecipientType     patch.Field[string]
	CommunicationType patch.Field[string]
	IsActive          patch.Field[bool]
}
