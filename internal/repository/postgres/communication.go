package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Kerhoff/storehouse/internal/models"
	"github.com/Kerhoff/storehouse/internal/repository"
)

const communicationColumns = `id, subject, message, recipient_type, recipient_ids, sent_at, created_by, created_at`

type communicationRepository struct {
	db *sqlx.DB
}

// NewCommunicationRepository creates a new communication repository
func NewCommunicationRepository(db *sqlx.DB) repository.CommunicationRepository {
	return &communicationRepository{db: db}
}

func (r *communicationRepository) Create(ctx context.Context, c *models.Communication) (*models.Communication, error) {
	query := `
		INSERT INTO communications (subject, message, recipient_type, recipient_ids, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + communicationColumns

	return insert[models.Communication](ctx, r.db, query, "communication",
		c.Subject,
		c.Message,
		c.RecipientType,
		c.RecipientIDs,
		c.CreatedBy,
	)
}

func (r *communicationRepository) GetByID(ctx context.Context, id int64) (*models.Communication, error) {
	return getByID[models.Communication](ctx, r.db, "communications", communicationColumns, id, "communication")
}

func (r *communicationRepository) List(ctx context.Context, filters repository.CommunicationFilters) ([]*models.Communication, error) {
	w := &whereClause{}
	eqIf(w, "recipient_type", filters.RecipientType)

	return list[models.Communication](ctx, r.db, "communications", communicationColumns, w, filters.Page, "communications")
}

// MarkSent records the dispatch time. A communication is only sent once:
// the first recorded time is kept.
func (r *communicationRepository) MarkSent(ctx context.Context, id int64, sentAt time.Time) (*models.Communication, error) {
	query := `
		UPDATE communications SET sent_at = COALESCE(sent_at, $1)
		WHERE id = $2
		RETURNING ` + communicationColumns

	c := &models.Communication{}
	if err := r.db.GetContext(ctx, c, query, sentAt, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("communication with ID %d: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to mark communication sent: %w", err)
	}
	return c, nil
}

const communicationTemplateColumns = `id, name, subject, message, recipient_type, communication_type,
	is_active, created_at, updated_at`

type communicationTemplateRepository struct {
	db *sqlx.DB
}

// NewCommunicationTemplateRepository creates a new template repository
func NewCommunicationTemplateRepository(db *sqlx.DB) repository.CommunicationTemplateRepository {
	return &communicationTemplateRepository{db: db}
}

func (r *communicationTemplateRepository) Create(ctx context.Context, t *models.CommunicationTemplate) (*models.CommunicationTemplate, error) {
	query := `
		INSERT INTO communication_templates (name, subject, message, recipient_type, communication_type, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + communicationTemplateColumns

	return insert[models.CommunicationTemplate](ctx, r.db, query, "communication template",
		t.Name,
		t.Subject,
		t.Message,
		t.RecipientType,
		t.CommunicationType,
		t.IsActive,
	)
}

func (r *communicationTemplateRepository) GetByID(ctx context.Context, id int64) (*models.CommunicationTemplate, error) {
	return getByID[models.CommunicationTemplate](ctx, r.db, "communication_templates", communicationTemplateColumns, id, "communication template")
}

func (r *communicationTemplateRepository) List(ctx context.Context, filters repository.CommunicationTemplateFilters) ([]*models.CommunicationTemplate, error) {
	w := &whereClause{}
	eqIf(w, "recipient_type", filters.RecipientType)
	eqIf(w, "communication_type", filters.CommunicationType)

	return list[models.CommunicationTemplate](ctx, r.db, "communication_templates", communicationTemplateColumns, w, filters.Page, "communication templates")
}

func (r *communicationTemplateRepository) Update(ctx context.Context, id int64, p repository.CommunicationTemplatePatch) (*models.CommunicationTemplate, error) {
	s := &setClause{}
	setField(s, "name", p.Name)
	setField(s, "subject", p.Subject)
	setField(s, "message", p.Message)
	setField(s, "recipient_type", p.RecipientType)
	setField(s, "communication_type", p.CommunicationType)
	setField(s, "is_active", p.IsActive)

	return update[models.CommunicationTemplate](ctx, r.db, "communication_templates", communicationTemplateColumns, s, true, id, "communication template")
}

func (r *communicationTemplateRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "communication_templates", id, "communication template")
}
