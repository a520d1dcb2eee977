package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/Kerhoff/storehouse/internal/models"
	"github.com/Kerhoff/storehouse/internal/repository"
)

const rotaColumns = `id, rota_type, quarter_start, quarter_end, is_active, created_at, updated_at`

type rotaRepository struct {
	db *sqlx.DB
}

// NewRotaRepository creates a new rota repository
func NewRotaRepository(db *sqlx.DB) repository.RotaRepository {
	return &rotaRepository{db: db}
}

func (r *rotaRepository) Create(ctx context.Context, rota *models.Rota) (*models.Rota, error) {
	query := `
		INSERT INTO rotas (rota_type, quarter_start, quarter_end, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + rotaColumns

	return insert[models.Rota](ctx, r.db, query, "rota",
		rota.RotaType,
		rota.QuarterStart,
		rota.QuarterEnd,
		rota.IsActive,
	)
}

func (r *rotaRepository) GetByID(ctx context.Context, id int64) (*models.Rota, error) {
	return getByID[models.Rota](ctx, r.db, "rotas", rotaColumns, id, "rota")
}

func (r *rotaRepository) List(ctx context.Context, filters repository.RotaFilters) ([]*models.Rota, error) {
	w := &whereClause{}
	eqIf(w, "rota_type", filters.RotaType)
	eqIf(w, "is_active", filters.IsActive)

	return list[models.Rota](ctx, r.db, "rotas", rotaColumns, w, filters.Page, "rotas")
}

func (r *rotaRepository) Update(ctx context.Context, id int64, p repository.RotaPatch) (*models.Rota, error) {
	s := &setClause{}
	setField(s, "quarter_start", p.QuarterStart)
	setField(s, "quarter_end", p.QuarterEnd)
	setField(s, "is_active", p.IsActive)

	return update[models.Rota](ctx, r.db, "rotas", rotaColumns, s, true, id, "rota")
}

const rotaAssignmentColumns = `id, rota_id, user_id, week_start, week_end, role, confirmed, notes, created_at`

type rotaAssignmentRepository struct {
	db *sqlx.DB
}

// NewRotaAssignmentRepository creates a new rota assignment repository
func NewRotaAssignmentRepository(db *sqlx.DB) repository.RotaAssignmentRepository {
	return &rotaAssignmentRepository{db: db}
}

func (r *rotaAssignmentRepository) Create(ctx context.Context, a *models.RotaAssignment) (*models.RotaAssignment, error) {
	query := `
		INSERT INTO rota_assignments (rota_id, user_id, week_start, week_end, role, confirmed, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + rotaAssignmentColumns

	return insert[models.RotaAssignment](ctx, r.db, query, "rota assignment",
		a.RotaID,
		a.UserID,
		a.WeekStart,
		a.WeekEnd,
		a.Role,
		a.Confirmed,
		a.Notes,
	)
}

func (r *rotaAssignmentRepository) GetByID(ctx context.Context, id int64) (*models.RotaAssignment, error) {
	return getByID[models.RotaAssignment](ctx, r.db, "rota_assignments", rotaAssignmentColumns, id, "rota assignment")
}

func (r *rotaAssignmentRepository) List(ctx context.Context, filters repository.RotaAssignmentFilters) ([]*models.RotaAssignment, error) {
	w := &whereClause{}
	eqIf(w, "rota_id", filters.RotaID)
	eqIf(w, "user_id", filters.UserID)

	return list[models.RotaAssignment](ctx, r.db, "rota_assignments", rotaAssignmentColumns, w, filters.Page, "rota assignments")
}

func (r *rotaAssignmentRepository) Update(ctx context.Context, id int64, p repository.RotaAssignmentPatch) (*models.RotaAssignment, error) {
	s := &setClause{}
	setField(s, "week_start", p.WeekStart)
	setField(s, "week_end", p.WeekEnd)
	setField(s, "role", p.Role)
	setField(s, "confirmed", p.Confirmed)
	setField(s, "notes", p.Notes)

	return update[models.RotaAssignment](ctx, r.db, "rota_assignments", rotaAssignmentColumns, s, false, id, "rota assignment")
}

func (r *rotaAssignmentRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "rota_assignments", id, "rota assignment")
}
