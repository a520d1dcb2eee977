package api

import (
	"net/http"
	"net/url"
	"time"

	"github.com/Kerhoff/storehouse/internal/models"
	"github.com/Kerhoff/storehouse/internal/patch"
	"github.com/Kerhoff/storehouse/internal/repository"
)

type rotaResponse struct {
	ID           int64      `json:"id"`
	RotaType     string     `json:"rota_type"`
	QuarterStart time.Time  `json:"quarter_start"`
	QuarterEnd   time.Time  `json:"quarter_end"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

func newRotaResponse(r *models.Rota) rotaResponse {
	return rotaResponse{
		ID:           r.ID,
		RotaType:     r.RotaType,
		QuarterStart: r.QuarterStart,
		QuarterEnd:   r.QuarterEnd,
		IsActive:     r.IsActive,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

type rotaCreateRequest struct {
	RotaType     string    `json:"rota_type" validate:"required"`
	QuarterStart time.Time `json:"quarter_start" validate:"required"`
	QuarterEnd   time.Time `json:"quarter_end" validate:"required"`
	IsActive     *bool     `json:"is_active"`
}

func (req rotaCreateRequest) toModel(*models.User) (*models.Rota, error) {
	c := &checks{}
	if req.QuarterEnd.Before(req.QuarterStart) {
		c.fail("quarter_end", "must not be before quarter_start")
	}
	return &models.Rota{
		RotaType:     req.RotaType,
		QuarterStart: req.QuarterStart,
		QuarterEnd:   req.QuarterEnd,
		IsActive:     boolOr(req.IsActive, true),
	}, c.err()
}

type rotaUpdateRequest struct {
	QuarterStart patch.Field[time.Time] `json:"quarter_start"`
	QuarterEnd   patch.Field[time.Time] `json:"quarter_end"`
	IsActive     patch.Field[bool]      `json:"is_active"`
}

func (req rotaUpdateRequest) toPatch() (repository.RotaPatch, error) {
	c := &checks{}
	c.add(req.QuarterStart.NotNull("quarter_start"))
	c.add(req.QuarterEnd.NotNull("quarter_end"))
	c.add(req.IsActive.NotNull("is_active"))

	return repository.RotaPatch{
		QuarterStart: req.QuarterStart,
		QuarterEnd:   req.QuarterEnd,
		IsActive:     req.IsActive,
	}, c.err()
}

func rotaFilters(q url.Values, page repository.Page, c *checks) repository.RotaFilters {
	return repository.RotaFilters{
		RotaType: queryString(q, "rota_type"),
		IsActive: queryBool(q, "is_active", c),
		Page:     page,
	}
}

func (s *Server) createRota() http.HandlerFunc {
	return createHandler[models.Rota, rotaCreateRequest](s, "Rota", s.svc.Rotas.Create, newRotaResponse)
}

func (s *Server) listRotas() http.HandlerFunc {
	return listHandler(s, "Rota", rotaFilters, s.svc.Rotas.List, newRotaResponse)
}

func (s *Server) getRota() http.HandlerFunc {
	return getHandler(s, "Rota", s.svc.Rotas.GetByID, newRotaResponse)
}

func (s *Server) updateRota() http.HandlerFunc {
	return updateHandler[models.Rota, rotaUpdateRequest](s, "Rota", s.svc.Rotas.Update, newRotaResponse)
}

type rotaAssignmentResponse struct {
	ID        int64     `json:"id"`
	RotaID    int64     `json:"rota_id"`
	UserID    int64     `json:"user_id"`
	WeekStart time.Time `json:"week_start"`
	WeekEnd   time.Time `json:"week_end"`
	Role      string    `json:"role"`
	Confirmed bool      `json:"confirmed"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

func newRotaAssignmentResponse(a *models.RotaAssignment) rotaAssignmentResponse {
	return rotaAssignmentResponse{
		ID:        a.ID,
		RotaID:    a.RotaID,
		UserID:    a.UserID,
		WeekStart: a.WeekStart,
		WeekEnd:   a.WeekEnd,
		Role:      a.Role,
		Confirmed: a.Confirmed,
		Notes:     a.Notes,
		CreatedAt: a.CreatedAt,
	}
}

type rotaAssignmentCreateRequest struct {
	RotaID    int64     `json:"rota_id" validate:"required"`
	UserID    int64     `json:"user_id" validate:"required"`
	WeekStart time.Time `json:"week_start" validate:"required"`
	WeekEnd   time.Time `json:"week_end" validate:"required"`
	Role      string    `json:"role" validate:"required"`
	Confirmed bool      `json:"confirmed"`
	Notes     *string   `json:"notes"`
}

func (req rotaAssignmentCreateRequest) toModel(*models.User) (*models.RotaAssignment, error) {
	return &models.RotaAssignment{
		RotaID:    req.RotaID,
		UserID:    req.UserID,
		WeekStart: req.WeekStart,
		WeekEnd:   req.WeekEnd,
		Role:      req.Role,
		Confirmed: req.Confirmed,
		Notes:     req.Notes,
	}, nil
}

type rotaAssignmentUpdateRequest struct {
	WeekStart patch.Field[time.Time] `json:"week_start"`
	WeekEnd   patch.Field[time.Time] `json:"week_end"`
	Role      patch.Field[string]    `json:"role"`
	Confirmed patch.Field[bool]      `json:"confirmed"`
	Notes     patch.Field[string]    `json:"notes"`
}

func (req rotaAssignmentUpdateRequest) toPatch() (repository.RotaAssignmentPatch, error) {
	c := &checks{}
	c.add(req.WeekStart.NotNull("week_start"))
	c.add(req.WeekEnd.NotNull("week_end"))
	c.text("role", req.Role)
	c.add(req.Confirmed.NotNull("confirmed"))

	return repository.RotaAssignmentPatch{
		WeekStart: req.WeekStart,
		WeekEnd:   req.WeekEnd,
		Role:      req.Role,
		Confirmed: req.Confirmed,
		Notes:     req.Notes,
	}, c.err()
}

func rotaAssignmentFilters(q url.Values, page repository.Page, c *checks) repository.RotaAssignmentFilters {
	return repository.RotaAssignmentFilters{
		RotaID: queryInt64(q, "rota_id", c),
		UserID: queryInt64(q, "user_id", c),
		Page:   page,
	}
}

func (s *Server) createRotaAssignment() http.HandlerFunc {
	return createHandler[models.RotaAssignment, rotaAssignmentCreateRequest](s, "Rota assignment", s.svc.RotaAssignments.Create, newRotaAssignmentResponse)
}

func (s *Server) listRotaAssignments() http.HandlerFunc {
	return listHandler(s, "Rota assignment", rotaAssignmentFilters, s.svc.RotaAssignments.List, newRotaAssignmentResponse)
}

func (s *Server) getRotaAssignment() http.HandlerFunc {
	return getHandler(s, "Rota assignment", s.svc.RotaAssignments.GetByID, newRotaAssignmentResponse)
}

func (s *Server) updateRotaAssignment() http.HandlerFunc {
	return updateHandler[models.RotaAssignment, rotaAssignmentUpdateRequest](s, "Rota assignment", s.svc.RotaAssignments.Update, newRotaAssignmentResponse)
}

func (s *Server) deleteRotaAssignment() http.HandlerFunc {
	return deleteHandler(s, "Rota assignment", s.svc.RotaAssignments.Delete)
}
