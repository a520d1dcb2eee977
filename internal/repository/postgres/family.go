package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/Kerhoff/storehouse/internal/models"
	"github.com/Kerhoff/storehouse/internal/repository"
)

const familyColumns = `id, agency_id, family_name, contact_person, phone, address, family_size,
	special_requirements, status, created_at, updated_at`

type familyRepository struct {
	db *sqlx.DB
}

// NewFamilyRepository creates a new family repository
func NewFamilyRepository(db *sqlx.DB) repository.FamilyRepository {
	return &familyRepository{db: db}
}

func (r *familyRepository) Create(ctx context.Context, family *models.Family) (*models.Family, error) {
	query := `
		INSERT INTO families (agency_id, family_name, contact_person, phone, address, family_size, special_requirements, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + familyColumns

	size := family.FamilySize
	if size == 0 {
		size = 1
	}
	status := family.Status
	if status == "" {
		status = models.FamilyStatusActive
	}

	return insert[models.Family](ctx, r.db, query, "family",
		family.AgencyID,
		family.FamilyName,
		family.ContactPerson,
		family.Phone,
		family.Address,
		size,
		family.SpecialRequirements,
		status,
	)
}

func (r *familyRepository) GetByID(ctx context.Context, id int64) (*models.Family, error) {
	return getByID[models.Family](ctx, r.db, "families", familyColumns, id, "family")
}

func (r *familyRepository) List(ctx context.Context, filters repository.FamilyFilters) ([]*models.Family, error) {
	w := &whereClause{}
	eqIf(w, "agency_id", filters.AgencyID)
	eqIf(w, "status", filters.Status)

	return list[models.Family](ctx, r.db, "families", familyColumns, w, filters.Page, "families")
}

func (r *familyRepository) Update(ctx context.Context, id int64, p repository.FamilyPatch) (*models.Family, error) {
	s := &setClause{}
	setField(s, "family_name", p.FamilyName)
	setField(s, "contact_person", p.ContactPerson)
	setField(s, "phone", p.Phone)
	setField(s, "address", p.Address)
	setField(s, "family_size", p.FamilySize)
	setField(s, "special_requirements", p.SpecialRequirements)
	setField(s, "status", p.Status)

	return update[models.Family](ctx, r.db, "families", familyColumns, s, true, id, "family")
}

const foodBoxColumns = `id, family_id, packing_session_id, box_number, status, collected_at,
	collected_by, notes, created_at, updated_at`

type foodBoxRepository struct {
	db *sqlx.DB
}

// NewFoodBoxRepository creates a new food box repository
func NewFoodBoxRepository(db *sqlx.DB) repository.FoodBoxRepository {
	return &foodBoxRepository{db: db}
}

func (r *foodBoxRepository) Create(ctx context.Context, box *models.FoodBox) (*models.FoodBox, error) {
	query := `
		INSERT INTO food_boxes (family_id, packing_session_id, box_number, status, collected_at, collected_by, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + foodBoxColumns

	status := box.Status
	if status == "" {
		status = models.DefaultFoodBoxStatus
	}

	return insert[models.FoodBox](ctx, r.db, query, "food box",
		box.FamilyID,
		box.PackingSessionID,
		box.BoxNumber,
		status,
		box.CollectedAt,
		box.CollectedBy,
		box.Notes,
	)
}

func (r *foodBoxRepository) GetByID(ctx context.Context, id int64) (*models.FoodBox, error) {
	return getByID[models.FoodBox](ctx, r.db, "food_boxes", foodBoxColumns, id, "food box")
}

func (r *foodBoxRepository) List(ctx context.Context, filters repository.FoodBoxFilters) ([]*models.FoodBox, error) {
	w := &whereClause{}
	eqIf(w, "family_id", filters.FamilyID)
	eqIf(w, "packing_session_id", filters.PackingSessionID)
	eqIf(w, "status", filters.Status)

	return list[models.FoodBox](ctx, r.db, "food_boxes", foodBoxColumns, w, filters.Page, "food boxes")
}

func (r *foodBoxRepository) Update(ctx context.Context, id int64, p repository.FoodBoxPatch) (*models.FoodBox, error) {
	s := &setClause{}
	setField(s, "status", p.Status)
	setField(s, "collected_at", p.CollectedAt)
	setField(s, "collected_by", p.CollectedBy)
	setField(s, "notes", p.Notes)

	return update[models.FoodBox](ctx, r.db, "food_boxes", foodBoxColumns, s, true, id, "food box")
}
