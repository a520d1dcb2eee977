package api

import (
	"net/http"
	"net/url"
	"time"

	"github.com/Kerhoff/storehouse/internal/models"
	"github.com/Kerhoff/storehouse/internal/patch"
	"github.com/Kerhoff/storehouse/internal/repository"
)

type familyResponse struct {
	ID                  int64               `json:"id"`
	AgencyID            int64               `json:"agency_id"`
	FamilyName          string              `json:"family_name"`
	ContactPerson       string              `json:"contact_person"`
	Phone               *string             `json:"phone"`
	Address             *string             `json:"address"`
	FamilySize          int                 `json:"family_size"`
	SpecialRequirements *string             `json:"special_requirements"`
	Status              models.FamilyStatus `json:"status"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           *time.Time          `json:"updated_at"`
}

func newFamilyResponse(f *models.Family) familyResponse {
	return familyResponse{
		ID:                  f.ID,
		AgencyID:            f.AgencyID,
		FamilyName:          f.FamilyName,
		ContactPerson:       f.ContactPerson,
		Phone:               f.Phone,
		Address:             f.Address,
		FamilySize:          f.FamilySize,
		SpecialRequirements: f.SpecialRequirements,
		Status:              f.Status,
		CreatedAt:           f.CreatedAt,
		UpdatedAt:           f.UpdatedAt,
	}
}

type familyCreateRequest struct {
	AgencyID            int64                `json:"agency_id" validate:"required"`
	FamilyName          string               `json:"family_name" validate:"required"`
	ContactPerson       string               `json:"contact_person" validate:"required"`
	Phone               *string              `json:"phone"`
	Address             *string              `json:"address"`
	FamilySize          *int                 `json:"family_size" validate:"omitempty,gte=1"`
	SpecialRequirements *string              `json:"special_requirements"`
	Status              *models.FamilyStatus `json:"status"`
}

func (req familyCreateRequest) toModel(*models.User) (*models.Family, error) {
	f := &models.Family{
		AgencyID:            req.AgencyID,
		FamilyName:          req.FamilyName,
		ContactPerson:       req.ContactPerson,
		Phone:               req.Phone,
		Address:             req.Address,
		FamilySize:          1,
		SpecialRequirements: req.SpecialRequirements,
		Status:              models.FamilyStatusActive,
	}
	if req.FamilySize != nil {
		f.FamilySize = *req.FamilySize
	}

	c := &checks{}
	if req.Status != nil {
		c.enum("status", true, req.Status.Valid())
		f.Status = *req.Status
	}
	return f, c.err()
}

type familyUpdateRequest struct {
	FamilyName          patch.Field[string]              `json:"family_name"`
	ContactPerson       patch.Field[string]              `json:"contact_person"`
	Phone               patch.Field[string]              `json:"phone"`
	Address             patch.Field[string]              `json:"address"`
	FamilySize          patch.Field[int]                 `json:"family_size"`
	SpecialRequirements patch.Field[string]              `json:"special_requirements"`
	Status              patch.Field[models.FamilyStatus] `json:"status"`
}

func (req familyUpdateRequest) toPatch() (repository.FamilyPatch, error) {
	c := &checks{}
	c.text("family_name", req.FamilyName)
	c.text("contact_person", req.ContactPerson)
	c.add(req.FamilySize.NotNull("family_size"))
	atLeast(c, "family_size", req.FamilySize, 1)
	c.add(req.Status.NotNull("status"))
	c.enum("status", req.Status.HasValue(), req.Status.Value.Valid())

	return repository.FamilyPatch{
		FamilyName:          req.FamilyName,
		ContactPerson:       req.ContactPerson,
		Phone:               req.Phone,
		Address:             req.Address,
		FamilySize:          req.FamilySize,
		SpecialRequirements: req.SpecialRequirements,
		Status:              req.Status,
	}, c.err()
}

func familyFilters(q url.Values, page repository.Page, c *checks) repository.FamilyFilters {
	return repository.FamilyFilters{
		AgencyID: queryInt64(q, "agency_id", c),
		Status:   queryEnum(q, "status", models.FamilyStatus.Valid, c),
		Page:     page,
	}
}

func (s *Server) createFamily() http.HandlerFunc {
	return createHandler[models.Family, familyCreateRequest](s, "Family", s.svc.Families.Create, newFamilyResponse)
}

func (s *Server) listFamilies() http.HandlerFunc {
	return listHandler(s, "Family", familyFilters, s.svc.Families.List, newFamilyResponse)
}

func (s *Server) getFamily() http.HandlerFunc {
	return getHandler(s, "Family", s.svc.Families.GetByID, newFamilyResponse)
}

func (s *Server) updateFamily() http.HandlerFunc {
	return updateHandler[models.Family, familyUpdateRequest](s, "Family", s.svc.Families.Update, newFamilyResponse)
}

type foodBoxResponse struct {
	ID               int64      `json:"id"`
	FamilyID         int64      `json:"family_id"`
	PackingSessionID int64      `json:"packing_session_id"`
	BoxNumber        string     `json:"box_number"`
	Status           string     `json:"status"`
	CollectedAt      *time.Time `json:"collected_at"`
	CollectedBy      *string    `json:"collected_by"`
	Notes            *string    `json:"notes"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at"`
}

func newFoodBoxResponse(b *models.FoodBox) foodBoxResponse {
	return foodBoxResponse{
		ID:               b.ID,
		FamilyID:         b.FamilyID,
		PackingSessionID: b.PackingSessionID,
		BoxNumber:        b.BoxNumber,
		Status:           b.Status,
		CollectedAt:      b.CollectedAt,
		CollectedBy:      b.CollectedBy,
		Notes:            b.Notes,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

type foodBoxCreateRequest struct {
	FamilyID         int64   `json:"family_id" validate:"required"`
	PackingSessionID int64   `json:"packing_session_id" validate:"required"`
	BoxNumber        string  `json:"box_number" validate:"required"`
	Status           *string `json:"status"`
	Notes            *string `json:"notes"`
}

func (req foodBoxCreateRequest) toModel(*models.User) (*models.FoodBox, error) {
	status := models.DefaultFoodBoxStatus
	if req.Status != nil {
		status = *req.Status
	}
	return &models.FoodBox{
		FamilyID:         req.FamilyID,
		PackingSessionID: req.PackingSessionID,
		BoxNumber:        req.BoxNumber,
		Status:           status,
		Notes:            req.Notes,
	}, nil
}

type foodBoxUpdateRequest struct {
	Status      patch.Field[string]    `json:"status"`
	CollectedAt patch.Field[time.Time] `json:"collected_at"`
	CollectedBy patch.Field[string]    `json:"collected_by"`
	Notes       patch.Field[string]    `json:"notes"`
}

func (req foodBoxUpdateRequest) toPatch() (repository.FoodBoxPatch, error) {
	c := &checks{}
	c.add(req.Status.NotNull("status"))

	return repository.FoodBoxPatch{
		Status:      req.Status,
		CollectedAt: req.CollectedAt,
		CollectedBy: req.CollectedBy,
		Notes:       req.Notes,
	}, c.err()
}

func foodBoxFilters(q url.Values, page repository.Page, c *checks) repository.FoodBoxFilters {
	return repository.FoodBoxFilters{
		FamilyID:         queryInt64(q, "family_id", c),
		PackingSessionID: queryInt64(q, "packing_session_id", c),
		Status:           queryString(q, "status"),
		Page:             page,
	}
}

func (s *Server) createFoodBox() http.HandlerFunc {
	return createHandler[models.FoodBox, foodBoxCreateRequest](s, "Food box", s.svc.FoodBoxes.Create, newFoodBoxResponse)
}

func (s *Server) listFoodBoxes() http.HandlerFunc {
	return listHandler(s, "Food box", foodBoxFilters, s.svc.FoodBoxes.List, newFoodBoxResponse)
}

func (s *Server) getFoodBox() http.HandlerFunc {
	return getHandler(s, "Food box", s.svc.FoodBoxes.GetByID, newFoodBoxResponse)
}

func (s *Server) updateFoodBox() http.HandlerFunc {
	return updateHandler[models.FoodBox, foodBoxUpdateRequest](s, "Food box", s.svc.FoodBoxes.Update, newFoodBoxResponse)
}
