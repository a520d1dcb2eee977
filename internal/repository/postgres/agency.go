package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/Kerhoff/storehouse/internal/models"
	"github.com/Kerhoff/storehouse/internal/repository"
)

const agencyColumns = `id, name, contact_person, email, phone, address, is_active, created_at, updated_at`

type agencyRepository struct {
	db *sqlx.DB
}

// NewAgencyRepository creates a new agency repository
func NewAgencyRepository(db *sqlx.DB) repository.AgencyRepository {
	return &agencyRepository{db: db}
}

func (r *agencyRepository) Create(ctx context.Context, agency *models.Agency) (*models.Agency, error) {
	query := `
		INSERT INTO agencies (name, contact_person, email, phone, address, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + agencyColumns

	return insert[models.Agency](ctx, r.db, query, "agency",
		agency.Name,
		agency.ContactPerson,
		agency.Email,
		agency.Phone,
		agency.Address,
		agency.IsActive,
	)
}

func (r *agencyRepository) GetByID(ctx context.Context, id int64) (*models.Agency, error) {
	return getByID[models.Agency](ctx, r.db, "agencies", agencyColumns, id, "agency")
}

func (r *agencyRepository) List(ctx context.Context, filters repository.AgencyFilters) ([]*models.Agency, error) {
	w := &whereClause{}
	eqIf(w, "is_active", filters.IsActive)

	return list[models.Agency](ctx, r.db, "agencies", agencyColumns, w, filters.Page, "agencies")
}

func (r *agencyRepository) Update(ctx context.Context, id int64, p repository.AgencyPatch) (*models.Agency, error) {
	s := &setClause{}
	setField(s, "name", p.Name)
	setField(s, "contact_person", p.ContactPerson)
	setField(s, "email", p.Email)
	setField(s, "phone", p.Phone)
	setField(s, "address", p.Address)
	setField(s, "is_active", p.IsActive)

	return update[models.Agency](ctx, r.db, "agencies", agencyColumns, s, true, id, "agency")
}

const weeklyRequirementColumns = `id, agency_id, week_start, week_end, total_families, total_boxes,
	special_requests, status, created_at, updated_at`

type weeklyRequirementRepository struct {
	db *sqlx.DB
}

// NewWeeklyRequirementRepository creates a new weekly requirement repository
func NewWeeklyRequirementRepository(db *sqlx.DB) repository.WeeklyRequirementRepository {
	return &weeklyRequirementRepository{db: db}
}

func (r *weeklyRequirementRepository) Create(ctx context.Context, req *models.WeeklyRequirement) (*models.WeeklyRequirement, error) {
	query := `
		INSERT INTO weekly_requirements (agency_id, week_start, week_end, total_families, total_boxes, special_requests, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + weeklyRequirementColumns

	status := req.Status
	if status == "" {
		status = models.DefaultRequirementStatus
	}

	return insert[models.WeeklyRequirement](ctx, r.db, query, "weekly requirement",
		req.AgencyID,
		req.WeekStart,
		req.WeekEnd,
		req.TotalFamilies,
		req.TotalBoxes,
		req.SpecialRequests,
		status,
	)
}

func (r *weeklyRequirementRepository) GetByID(ctx context.Context, id int64) (*models.WeeklyRequirement, error) {
	return getByID[models.WeeklyRequirement](ctx, r.db, "weekly_requirements", weeklyRequirementColumns, id, "weekly requirement")
}

func (r *weeklyRequirementRepository) List(ctx context.Context, filters repository.WeeklyRequirementFilters) ([]*models.WeeklyRequirement, error) {
	w := &whereClause{}
	eqIf(w, "agency_id", filters.AgencyID)
	eqIf(w, "status", filters.Status)

	return list[models.WeeklyRequirement](ctx, r.db, "weekly_requirements", weeklyRequirementColumns, w, filters.Page, "weekly requirements")
}

func (r *weeklyRequirementRepository) Update(ctx context.Context, id int64, p repository.WeeklyRequirementPatch) (*models.WeeklyRequirement, error) {
	s := &setClause{}
	setField(s, "total_families", p.TotalFamilies)
	setField(s, "total_boxes", p.TotalBoxes)
	setField(s, "special_requests", p.SpecialRequests)
	setField(s, "status", p.Status)

	return update[models.WeeklyRequirement](ctx, r.db, "weekly_requirements", weeklyRequirementColumns, s, true, id, "weekly requirement")
}
