package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/Kerhoff/storehouse/internal/models"
	"github.com/Kerhoff/storehouse/internal/repository"
)

const packingListColumns = `id, week_start, week_end, total_boxes, status, created_at, updated_at`

type packingListRepository struct {
	db *sqlx.DB
}

// NewPackingListRepository creates a new packing list repository
func NewPackingListRepository(db *sqlx.DB) repository.PackingListRepository {
	return &packingListRepository{db: db}
}

func (r *packingListRepository) Create(ctx context.Context, pl *models.PackingList) (*models.PackingList, error) {
	query := `
		INSERT INTO packing_lists (week_start, week_end, total_boxes, status)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + packingListColumns

	status := pl.Status
	if status == "" {
		status = models.PackingStatusScheduled
	}

	return insert[models.PackingList](ctx, r.db, query, "packing list",
		pl.WeekStart,
		pl.WeekEnd,
		pl.TotalBoxes,
		status,
	)
}

func (r *packingListRepository) GetByID(ctx context.Context, id int64) (*models.PackingList, error) {
	return getByID[models.PackingList](ctx, r.db, "packing_lists", packingListColumns, id, "packing list")
}

func (r *packingListRepository) List(ctx context.Context, filters repository.PackingListFilters) ([]*models.PackingList, error) {
	w := &whereClause{}
	eqIf(w, "status", filters.Status)

	return list[models.PackingList](ctx, r.db, "packing_lists", packingListColumns, w, filters.Page, "packing lists")
}

func (r *packingListRepository) Update(ctx context.Context, id int64, p repository.PackingListPatch) (*models.PackingList, error) {
	s := &setClause{}
	setField(s, "total_boxes", p.TotalBoxes)
	setField(s, "status", p.Status)

	return update[models.PackingList](ctx, r.db, "packing_lists", packingListColumns, s, true, id, "packing list")
}

func (r *packingListRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "packing_lists", id, "packing list")
}

const packingListItemColumns = `id, packing_list_id, item_id, quantity_per_box, total_quantity_needed, created_at`

type packingListItemRepository struct {
	db *sqlx.DB
}

// NewPackingListItemRepository creates a new packing list line repository
func NewPackingListItemRepository(db *sqlx.DB) repository.PackingListItemRepository {
	return &packingListItemRepository{db: db}
}

func (r *packingListItemRepository) Create(ctx context.Context, line *models.PackingListItem) (*models.PackingListItem, error) {
	query := `
		INSERT INTO packing_list_items (packing_list_id, item_id, quantity_per_box, total_quantity_needed)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + packingListItemColumns

	return insert[models.PackingListItem](ctx, r.db, query, "packing list item",
		line.PackingListID,
		line.ItemID,
		line.QuantityPerBox,
		line.TotalQuantityNeeded,
	)
}

func (r *packingListItemRepository) GetByID(ctx context.Context, id int64) (*models.PackingListItem, error) {
	return getByID[models.PackingListItem](ctx, r.db, "packing_list_items", packingListItemColumns, id, "packing list item")
}

func (r *packingListItemRepository) List(ctx context.Context, filters repository.PackingListItemFilters) ([]*models.PackingListItem, error) {
	w := &whereClause{}
	eqIf(w, "packing_list_id", filters.PackingListID)

	return list[models.PackingListItem](ctx, r.db, "packing_list_items", packingListItemColumns, w, filters.Page, "packing list items")
}

func (r *packingListItemRepository) Update(ctx context.Context, id int64, p repository.PackingListItemPatch) (*models.PackingListItem, error) {
	s := &setClause{}
	setField(s, "quantity_per_box", p.QuantityPerBox)
	setField(s, "total_quantity_needed", p.TotalQuantityNeeded)

	return update[models.PackingListItem](ctx, r.db, "packing_list_items", packingListItemColumns, s, false, id, "packing list item")
}

func (r *packingListItemRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "packing_list_items", id, "packing list item")
}

const packingSessionColumns = `id, packing_list_id, scheduled_date, status, notes, created_at, updated_at`

type packingSessionRepository struct {
	db *sqlx.DB
}

// NewPackingSessionRepository creates a new packing session repository
func NewPackingSessionRepository(db *sqlx.DB) repository.PackingSessionRepository {
	return &packingSessionRepository{db: db}
}

func (r *packingSessionRepository) Create(ctx context.Context, session *models.PackingSession) (*models.PackingSession, error) {
	query := `
		INSERT INTO packing_sessions (packing_list_id, scheduled_date, status, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + packingSessionColumns

	status := session.Status
	if status == "" {
		status = models.PackingStatusScheduled
	}

	return insert[models.PackingSession](ctx, r.db, query, "packing session",
		session.PackingListID,
		session.ScheduledDate,
		status,
		session.Notes,
	)
}

func (r *packingSessionRepository) GetByID(ctx context.Context, id int64) (*models.PackingSession, error) {
	return getByID[models.PackingSession](ctx, r.db, "packing_sessions", packingSessionColumns, id, "packing session")
}

func (r *packingSessionRepository) List(ctx context.Context, filters repository.PackingSessionFilters) ([]*models.PackingSession, error) {
	w := &whereClause{}
	eqIf(w, "packing_list_id", filters.PackingListID)
	eqIf(w, "status", filters.Status)

	return list[models.PackingSession](ctx, r.db, "packing_sessions", packingSessionColumns, w, filters.Page, "packing sessions")
}

func (r *packingSessionRepository) Update(ctx context.Context, id int64, p repository.PackingSessionPatch) (*models.PackingSession, error) {
	s := &setClause{}
	setField(s, "scheduled_date", p.ScheduledDate)
	setField(s, "status", p.Status)
	setField(s, "notes", p.Notes)

	return update[models.PackingSession](ctx, r.db, "packing_sessions", packingSessionColumns, s, true, id, "packing session")
}

const volunteerAssignmentColumns = `id, packing_session_id, user_id, role, confirmed, notes, created_at`

type volunteerAssignmentRepository struct {
	db *sqlx.DB
}

// NewVolunteerAssignmentRepository creates a new session staffing repository
func NewVolunteerAssignmentRepository(db *sqlx.DB) repository.VolunteerAssignmentRepository {
	return &volunteerAssignmentRepository{db: db}
}

func (r *volunteerAssignmentRepository) Create(ctx context.Context, a *models.VolunteerAssignment) (*models.VolunteerAssignment, error) {
	query := `
		INSERT INTO volunteer_assignments (packing_session_id, user_id, role, confirmed, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + volunteerAssignmentColumns

	return insert[models.VolunteerAssignment](ctx, r.db, query, "volunteer assignment",
		a.PackingSessionID,
		a.UserID,
		a.Role,
		a.Confirmed,
		a.Notes,
	)
}

func (r *volunteerAssignmentRepository) GetByID(ctx context.Context, id int64) (*models.VolunteerAssignment, error) {
	return getByID[models.VolunteerAssignment](ctx, r.db, "volunteer_assignments", volunteerAssignmentColumns, id, "volunteer assignment")
}

func (r *volunteerAssignmentRepository) List(ctx context.Context, filters repository.VolunteerAssignmentFilters) ([]*models.VolunteerAssignment, error) {
	w := &whereClause{}
	eqIf(w, "packing_session_id", filters.PackingSessionID)
	eqIf(w, "user_id", filters.UserID)

	return list[models.VolunteerAssignment](ctx, r.db, "volunteer_assignments", volunteerAssignmentColumns, w, filters.Page, "volunteer assignments")
}

func (r *volunteerAssignmentRepository) Update(ctx context.Context, id int64, p repository.VolunteerAssignmentPatch) (*models.VolunteerAssignment, error) {
	s := &setClause{}
	setField(s, "role", p.Role)
	setField(s, "confirmed", p.Confirmed)
	setField(s, "notes", p.Notes)

	return update[models.VolunteerAssignment](ctx, r.db, "volunteer_assignments", volunteerAssignmentColumns, s, false, id, "volunteer assignment")
}
