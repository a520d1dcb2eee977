package api

import (
	"net/http"
	"net/url"
	"time"

	"github.com/Kerhoff/storehouse/internal/models"
	"github.com/Kerhoff/storehouse/internal/patch"
	"github.com/Kerhoff/storehouse/internal/repository"
)

type packingListResponse struct {
	ID         int64                `json:"id"`
	WeekStart  time.Time            `json:"week_start"`
	WeekEnd    time.Time            `json:"week_end"`
	TotalBoxes int                  `json:"total_boxes"`
	Status     models.PackingStatus `json:"status"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  *time.Time           `json:"updated_at"`
}

func newPackingListResponse(l *models.PackingList) packingListResponse {
	return packingListResponse{
		ID:         l.ID,
		WeekStart:  l.WeekStart,
		WeekEnd:    l.WeekEnd,
		TotalBoxes: l.TotalBoxes,
		Status:     l.Status,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}

type packingListCreateRequest struct {
	WeekStart  time.Time             `json:"week_start" validate:"required"`
	WeekEnd    time.Time             `json:"week_end" validate:"required"`
	TotalBoxes int                   `json:"total_boxes" validate:"gte=0"`
	Status     *models.PackingStatus `json:"status"`
}

func (req packingListCreateRequest) toModel(*models.User) (*models.PackingList, error) {
	l := &models.PackingList{
		WeekStart:  req.WeekStart,
		WeekEnd:    req.WeekEnd,
		TotalBoxes: req.TotalBoxes,
		Status:     models.PackingStatusScheduled,
	}

	c := &checks{}
	if req.WeekEnd.Before(req.WeekStart) {
		c.fail("week_end", "must not be before week_start")
	}
	if req.Status != nil {
		c.enum("status", true, req.Status.Valid())
		l.Status = *req.Status
	}
	return l, c.err()
}

type packingListUpdateRequest struct {
	TotalBoxes patch.Field[int]                  `json:"total_boxes"`
	Status     patch.Field[models.PackingStatus] `json:"status"`
}

func (req packingListUpdateRequest) toPatch() (repository.PackingListPatch, error) {
	c := &checks{}
	c.add(req.TotalBoxes.NotNull("total_boxes"))
	atLeast(c, "total_boxes", req.TotalBoxes, 0)
	c.add(req.Status.NotNull("status"))
	c.enum("status", req.Status.HasValue(), req.Status.Value.Valid())

	return repository.PackingListPatch{
		TotalBoxes: req.TotalBoxes,
		Status:     req.Status,
	}, c.err()
}

func packingListFilters(q url.Values, page repository.Page, c *checks) repository.PackingListFilters {
	return repository.PackingListFilters{
		Status: queryEnum(q, "status", models.PackingStatus.Valid, c),
		Page:   page,
	}
}

func (s *Server) createPackingList() http.HandlerFunc {
	return createHandler[models.PackingList, packingListCreateRequest](s, "Packing list", s.svc.PackingLists.Create, newPackingListResponse)
}

func (s *Server) listPackingLists() http.HandlerFunc {
	return listHandler(s, "Packing list", packingListFilters, s.svc.PackingLists.List, newPackingListResponse)
}

func (s *Server) getPackingList() http.HandlerFunc {
	return getHandler(s, "Packing list", s.svc.PackingLists.GetByID, newPackingListResponse)
}

func (s *Server) updatePackingList() http.HandlerFunc {
	return updateHandler[models.PackingList, packingListUpdateRequest](s, "Packing list", s.svc.PackingLists.Update, newPackingListResponse)
}

func (s *Server) deletePackingList() http.HandlerFunc {
	return deleteHandler(s, "Packing list", s.svc.PackingLists.Delete)
}

type packingListItemResponse struct {
	ID                  int64     `json:"id"`
	PackingListID       int64     `json:"packing_list_id"`
	ItemID              int64     `json:"item_id"`
	QuantityPerBox      float64   `json:"quantity_per_box"`
	TotalQuantityNeeded float64   `json:"total_quantity_needed"`
	CreatedAt           time.Time `json:"created_at"`
}

func newPackingListItemResponse(i *models.PackingListItem) packingListItemResponse {
	return packingListItemResponse{
		ID:                  i.ID,
		PackingListID:       i.PackingListID,
		ItemID:              i.ItemID,
		QuantityPerBox:      i.QuantityPerBox,
		TotalQuantityNeeded: i.TotalQuantityNeeded,
		CreatedAt:           i.CreatedAt,
	}
}

type packingListItemCreateRequest struct {
	PackingListID       int64   `json:"packing_list_id" validate:"required"`
	ItemID              int64   `json:"item_id" validate:"required"`
	QuantityPerBox      float64 `json:"quantity_per_box" validate:"gt=0"`
	TotalQuantityNeeded float64 `json:"total_quantity_needed" validate:"gte=0"`
}

func (req packingListItemCreateRequest) toModel(*models.User) (*models.PackingListItem, error) {
	return &models.PackingListItem{
		PackingListID:       req.PackingListID,
		ItemID:              req.ItemID,
		QuantityPerBox:      req.QuantityPerBox,
		TotalQuantityNeeded: req.TotalQuantityNeeded,
	}, nil
}

type packingListItemUpdateRequest struct {
	QuantityPerBox      patch.Field[float64] `json:"quantity_per_box"`
	TotalQuantityNeeded patch.Field[float64] `json:"total_quantity_needed"`
}

func (req packingListItemUpdateRequest) toPatch() (repository.PackingListItemPatch, error) {
	c := &checks{}
	c.add(req.QuantityPerBox.NotNull("quantity_per_box"))
	c.add(req.TotalQuantityNeeded.NotNull("total_quantity_needed"))
	greaterThan(c, "quantity_per_box", req.QuantityPerBox, 0)
	atLeast(c, "total_quantity_needed", req.TotalQuantityNeeded, 0)

	return repository.PackingListItemPatch{
		QuantityPerBox:      req.QuantityPerBox,
		TotalQuantityNeeded: req.TotalQuantityNeeded,
	}, c.err()
}

func packingListItemFilters(q url.Values, page repository.Page, c *checks) repository.PackingListItemFilters {
	return repository.PackingListItemFilters{
		PackingListID: queryInt64(q, "packing_list_id", c),
		Page:          page,
	}
}

func (s *Server) createPackingListItem() http.HandlerFunc {
	return createHandler[models.PackingListItem, packingListItemCreateRequest](s, "Packing list item", s.svc.PackingListItems.Create, newPackingListItemResponse)
}

func (s *Server) listPackingListItems() http.HandlerFunc {
	return listHandler(s, "Packing list item", packingListItemFilters, s.svc.PackingListItems.List, newPackingListItemResponse)
}

func (s *Server) getPackingListItem() http.HandlerFunc {
	return getHandler(s, "Packing list item", s.svc.PackingListItems.GetByID, newPackingListItemResponse)
}

func (s *Server) updatePackingListItem() http.HandlerFunc {
	return updateHandler[models.PackingListItem, packingListItemUpdateRequest](s, "Packing list item", s.svc.PackingListItems.Update, newPackingListItemResponse)
}

func (s *Server) deletePackingListItem() http.HandlerFunc {
	return deleteHandler(s, "Packing list item", s.svc.PackingListItems.Delete)
}

type packingSessionResponse struct {
	ID            int64                `json:"id"`
	PackingListID int64                `json:"packing_list_id"`
	ScheduledDate time.Time            `json:"scheduled_date"`
	Status        models.PackingStatus `json:"status"`
	Notes         *string              `json:"notes"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     *time.Time           `json:"updated_at"`
}

func newPackingSessionResponse(ps *models.PackingSession) packingSessionResponse {
	return packingSessionResponse{
		ID:            ps.ID,
		PackingListID: ps.PackingListID,
		ScheduledDate: ps.ScheduledDate,
		Status:        ps.Status,
		Notes:         ps.Notes,
		CreatedAt:     ps.CreatedAt,
		UpdatedAt:     ps.UpdatedAt,
	}
}

type packingSessionCreateRequest struct {
	PackingListID int64                 `json:"packing_list_id" validate:"required"`
	ScheduledDate time.Time             `json:"scheduled_date" validate:"required"`
	Status        *models.PackingStatus `json:"status"`
	Notes         *string               `json:"notes"`
}

func (req packingSessionCreateRequest) toModel(*models.User) (*models.PackingSession, error) {
	ps := &models.PackingSession{
		PackingListID: req.PackingListID,
		ScheduledDate: req.ScheduledDate,
		Status:        models.PackingStatusScheduled,
		Notes:         req.Notes,
	}

	c := &checks{}
	if req.Status != nil {
		c.enum("status", true, req.Status.Valid())
		ps.Status = *req.Status
	}
	return ps, c.err()
}

type packingSessionUpdateRequest struct {
	ScheduledDate patch.Field[time.Time]            `json:"scheduled_date"`
	Status        patch.Field[models.PackingStatus] `json:"status"`
	Notes         patch.Field[string]               `json:"notes"`
}

func (req packingSessionUpdateRequest) toPatch() (repository.PackingSessionPatch, error) {
	c := &checks{}
	c.add(req.ScheduledDate.NotNull("scheduled_date"))
	c.add(req.Status.NotNull("status"))
	c.enum("status", req.Status.HasValue(), req.Status.Value.Valid())

	return repository.PackingSessionPatch{
		ScheduledDate: req.ScheduledDate,
		Status:        req.Status,
		Notes:         req.Notes,
	}, c.err()
}

func packingSessionFilters(q url.Values, page repository.Page, c *checks) repository.PackingSessionFilters {
	return repository.PackingSessionFilters{
		PackingListID: queryInt64(q, "packing_list_id", c),
		Status:        queryEnum(q, "status", models.PackingStatus.Valid, c),
		Page:          page,
	}
}

func (s *Server) createPackingSession() http.HandlerFunc {
	return createHandler[models.PackingSession, packingSessionCreateRequest](s, "Packing session", s.svc.PackingSessions.Create, newPackingSessionResponse)
}

func (s *Server) listPackingSessions() http.HandlerFunc {
	return listHandler(s, "Packing session", packingSessionFilters, s.svc.PackingSessions.List, newPackingSessionResponse)
}

func (s *Server) getPackingSession() http.HandlerFunc {
	return getHandler(s, "Packing session", s.svc.PackingSessions.GetByID, newPackingSessionResponse)
}

func (s *Server) updatePackingSession() http.HandlerFunc {
	return updateHandler[models.PackingSession, packingSessionUpdateRequest](s, "Packing session", s.svc.PackingSessions.Update, newPackingSessionResponse)
}

type volunteerAssignmentResponse struct {
	ID               int64     `json:"id"`
	PackingSessionID int64     `json:"packing_session_id"`
	UserID           int64     `json:"user_id"`
	Role             string    `json:"role"`
	Confirmed        bool      `json:"confirmed"`
	Notes            *string   `json:"notes"`
	CreatedAt        time.Time `json:"created_at"`
}

func newVolunteerAssignmentResponse(a *models.VolunteerAssignment) volunteerAssignmentResponse {
	return volunteerAssignmentResponse{
		ID:               a.ID,
		PackingSessionID: a.PackingSessionID,
		UserID:           a.UserID,
		Role:             a.Role,
		Confirmed:        a.Confirmed,
		Notes:            a.Notes,
		CreatedAt:        a.CreatedAt,
	}
}

type volunteerAssignmentCreateRequest struct {
	PackingSessionID int64   `json:"packing_session_id" validate:"required"`
	UserID           int64   `json:"user_id" validate:"required"`
	Role             string  `json:"role" validate:"required"`
	Confirmed        bool    `json:"confirmed"`
	Notes            *string `json:"notes"`
}

func (req volunteerAssignmentCreateRequest) toModel(*models.User) (*models.VolunteerAssignment, error) {
	return &models.VolunteerAssignment{
		PackingSessionID: req.PackingSessionID,
		UserID:           req.UserID,
		Role:             req.Role,
		Confirmed:        req.Confirmed,
		Notes:            req.Notes,
	}, nil
}

type volunteerAssignmentUpdateRequest struct {
	Role      patch.Field[string] `json:"role"`
	Confirmed patch.Field[bool]   `json:"confirmed"`
	Notes     patch.Field[string] `json:"notes"`
}

func (req volunteerAssignmentUpdateRequest) toPatch() (repository.VolunteerAssignmentPatch, error) {
	c := &checks{}
	c.text("role", req.Role)
	c.add(req.Confirmed.NotNull("confirmed"))

	return repository.VolunteerAssignmentPatch{
		Role:      req.Role,
		Confirmed: req.Confirmed,
		Notes:     req.Notes,
	}, c.err()
}

func volunteerAssignmentFilters(q url.Values, page repository.Page, c *checks) repository.VolunteerAssignmentFilters {
	return repository.VolunteerAssignmentFilters{
		PackingSessionID: queryInt64(q, "packing_session_id", c),
		UserID:           queryInt64(q, "user_id", c),
		Page:             page,
	}
}

func (s *Server) createVolunteerAssignment() http.HandlerFunc {
	return createHandler[models.VolunteerAssignment, volunteerAssignmentCreateRequest](s, "Volunteer assignment", s.svc.VolunteerAssignments.Create, newVolunteerAssignmentResponse)
}

func (s *Server) listVolunteerAssignments() http.HandlerFunc {
	return listHandler(s, "Volunteer assignment", volunteerAssignmentFilters, s.svc.VolunteerAssignments.List, newVolunteerAssignmentResponse)
}

func (s *Server) getVolunteerAssignment() http.HandlerFunc {
	return getHandler(s, "Volunteer assignment", s.svc.VolunteerAssignments.GetByID, newVolunteerAssignmentResponse)
}

func (s *Server) updateVolunteerAssignment() http.HandlerFunc {
	return updateHandler[models.VolunteerAssignment, volunteerAssignmentUpdateRequest](s, "Volunteer assignment", s.svc.VolunteerAssignments.Update, newVolunteerAssignmentResponse)
}
