package api

import (
	"net/http"
	"net/url"
	"time"

	"github.com/Kerhoff/storehouse/internal/models"
	"github.com/Kerhoff/storehouse/internal/patch"
	"github.com/Kerhoff/storehouse/internal/repository"
)

type agencyResponse struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	ContactPerson string     `json:"contact_person"`
	Email         string     `json:"email"`
	Phone         *string    `json:"phone"`
	Address       *string    `json:"address"`
	IsActive      bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
}

func newAgencyResponse(a *models.Agency) agencyResponse {
	return agencyResponse{
		ID:            a.ID,
		Name:          a.Name,
		ContactPerson: a.ContactPerson,
		Email:         a.Email,
		Phone:         a.Phone,
		Address:       a.Address,
		IsActive:      a.IsActive,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

type agencyCreateRequest struct {
	Name          string  `json:"name" validate:"required"`
	ContactPerson string  `json:"contact_person" validate:"required"`
	Email         string  `json:"email" validate:"required,email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	IsActive      *bool   `json:"is_active"`
}

func (req agencyCreateRequest) toModel(*models.User) (*models.Agency, error) {
	return &models.Agency{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		IsActive:      boolOr(req.IsActive, true),
	}, nil
}

type agencyUpdateRequest struct {
	Name          patch.Field[string] `json:"name"`
	ContactPerson patch.Field[string] `json:"contact_person"`
	Email         patch.Field[string] `json:"email"`
	Phone         patch.Field[string] `json:"phone"`
	Address       patch.Field[string] `json:"address"`
	IsActive      patch.Field[bool]   `json:"is_active"`
}

func (req agencyUpdateRequest) toPatch() (repository.AgencyPatch, error) {
	c := &checks{}
	c.text("name", req.Name)
	c.text("contact_person", req.ContactPerson)
	c.text("email", req.Email)
	c.email("email", req.Email.Value, req.Email.HasValue())
	c.add(req.IsActive.NotNull("is_active"))

	return repository.AgencyPatch{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		IsActive:      req.IsActive,
	}, c.err()
}

func agencyFilters(q url.Values, page repository.Page, c *checks) repository.AgencyFilters {
	return repository.AgencyFilters{
		IsActive: queryBool(q, "is_active", c),
		Page:     page,
	}
}

func (s *Server) createAgency() http.HandlerFunc {
	return createHandler[models.Agency, agencyCreateRequest](s, "Agency", s.svc.Agencies.Create, newAgencyResponse)
}

func (s *Server) listAgencies() http.HandlerFunc {
	return listHandler(s, "Agency", agencyFilters, s.svc.Agencies.List, newAgencyResponse)
}

func (s *Server) getAgency() http.HandlerFunc {
	return getHandler(s, "Agency", s.svc.Agencies.GetByID, newAgencyResponse)
}

func (s *Server) updateAgency() http.HandlerFunc {
	return updateHandler[models.Agency, agencyUpdateRequest](s, "Agency", s.svc.Agencies.Update, newAgencyResponse)
}

type weeklyRequirementResponse struct {
	ID              int64      `json:"id"`
	AgencyID        int64      `json:"agency_id"`
	WeekStart       time.Time  `json:"week_start"`
	WeekEnd         time.Time  `json:"week_end"`
	TotalFamilies   int        `json:"total_families"`
	TotalBoxes      int        `json:"total_boxes"`
	SpecialRequests *string    `json:"special_requests"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at"`
}

func newWeeklyRequirementResponse(wr *models.WeeklyRequirement) weeklyRequirementResponse {
	return weeklyRequirementResponse{
		ID:              wr.ID,
		AgencyID:        wr.AgencyID,
		WeekStart:       wr.WeekStart,
		WeekEnd:         wr.WeekEnd,
		TotalFamilies:   wr.TotalFamilies,
		TotalBoxes:      wr.TotalBoxes,
		SpecialRequests: wr.SpecialRequests,
		Status:          wr.Status,
		CreatedAt:       wr.CreatedAt,
		UpdatedAt:       wr.UpdatedAt,
	}
}

type weeklyRequirementCreateRequest struct {
	AgencyID        int64     `json:"agency_id" validate:"required"`
	WeekStart       time.Time `json:"week_start" validate:"required"`
	WeekEnd         time.Time `json:"week_end" validate:"required"`
	TotalFamilies   int       `json:"total_families" validate:"gte=0"`
	TotalBoxes      int       `json:"total_boxes" validate:"gte=0"`
	SpecialRequests *string   `json:"special_requests"`
	Status          *string   `json:"status"`
}

func (req weeklyRequirementCreateRequest) toModel(*models.User) (*models.WeeklyRequirement, error) {
	status := models.DefaultRequirementStatus
	if req.Status != nil {
		status = *req.Status
	}
	return &models.WeeklyRequirement{
		AgencyID:        req.AgencyID,
		WeekStart:       req.WeekStart,
		WeekEnd:         req.WeekEnd,
		TotalFamilies:   req.TotalFamilies,
		TotalBoxes:      req.TotalBoxes,
		SpecialRequests: req.SpecialRequests,
		Status:          status,
	}, nil
}

type weeklyRequirementUpdateRequest struct {
	TotalFamilies   patch.Field[int]    `json:"total_families"`
	TotalBoxes      patch.Field[int]    `json:"total_boxes"`
	SpecialRequests patch.Field[string] `json:"special_requests"`
	Status          patch.Field[string] `json:"status"`
}

func (req weeklyRequirementUpdateRequest) toPatch() (repository.WeeklyRequirementPatch, error) {
	c := &checks{}
	c.add(req.TotalFamilies.NotNull("total_families"))
	c.add(req.TotalBoxes.NotNull("total_boxes"))
	atLeast(c, "total_families", req.TotalFamilies, 0)
	atLeast(c, "total_boxes", req.TotalBoxes, 0)
	c.add(req.Status.NotNull("status"))

	return repository.WeeklyRequirementPatch{
		TotalFamilies:   req.TotalFamilies,
		TotalBoxes:      req.TotalBoxes,
		SpecialRequests: req.SpecialRequests,
		Status:          req.Status,
	}, c.err()
}

func weeklyRequirementFilters(q url.Values, page repository.Page, c *checks) repository.WeeklyRequirementFilters {
	return repository.WeeklyRequirementFilters{
		AgencyID: queryInt64(q, "agency_id", c),
		Status:   queryString(q, "status"),
		Page:     page,
	}
}

func (s *Server) createWeeklyRequirement() http.HandlerFunc {
	return createHandler[models.WeeklyRequirement, weeklyRequirementCreateRequest](s, "Weekly requirement", s.svc.WeeklyRequirements.Create, newWeeklyRequirementResponse)
}

func (s *Server) listWeeklyRequirements() http.HandlerFunc {
	return listHandler(s, "Weekly requirement", weeklyRequirementFilters, s.svc.WeeklyRequirements.List, newWeeklyRequirementResponse)
}

func (s *Server) getWeeklyRequirement() http.HandlerFunc {
	return getHandler(s, "Weekly requirement", s.svc.WeeklyRequirements.GetByID, newWeeklyRequirementResponse)
}

func (s *Server) updateWeeklyRequirement() http.HandlerFunc {
	return updateHandler[models.WeeklyRequirement, weeklyRequirementUpdateRequest](s, "Weekly requirement", s.svc.WeeklyRequirements.Update, newWeeklyRequirementResponse)
}
