package api

import (
	"net/http"
	"net/url"
	"time"

	"github.com/lib/pq"

	"github.com/Kerhoff/storehouse/internal/models"
	"github.com/Kerhoff/storehouse/internal/patch"
	"github.com/Kerhoff/storehouse/internal/repository"
)

type communicationResponse struct {
	ID            int64      `json:"id"`
	Subject       string     `json:"subject"`
	Message       string     `json:"message"`
	RecipientType string     `json:"recipient_type"`
	RecipientIDs  []int64    `json:"recipient_ids"`
	SentAt        *time.Time `json:"sent_at"`
	CreatedBy     int64      `json:"created_by"`
	CreatedAt     time.Time  `json:"created_at"`
}

func newCommunicationResponse(c *models.Communication) communicationResponse {
	ids := make([]int64, len(c.RecipientIDs))
	copy(ids, c.RecipientIDs)
	return communicationResponse{
		ID:            c.ID,
		Subject:       c.Subject,
		Message:       c.Message,
		RecipientType: c.RecipientType,
		RecipientIDs:  ids,
		SentAt:        c.SentAt,
		CreatedBy:     c.CreatedBy,
		CreatedAt:     c.CreatedAt,
	}
}

type communicationCreateRequest struct {
	Subject       string  `json:"subject" validate:"required"`
	Message       string  `json:"message" validate:"required"`
	RecipientType string  `json:"recipient_type" validate:"required"`
	RecipientIDs  []int64 `json:"recipient_ids"`
	CreatedBy     *int64  `json:"created_by"`
}

func (req communicationCreateRequest) toModel(caller *models.User) (*models.Communication, error) {
	c := &models.Communication{
		Subject:       req.Subject,
		Message:       req.Message,
		RecipientType: req.RecipientType,
		RecipientIDs:  pq.Int64Array(req.RecipientIDs),
	}
	if c.RecipientIDs == nil {
		c.RecipientIDs = pq.Int64Array{}
	}
	switch {
	case req.CreatedBy != nil:
		c.CreatedBy = *req.CreatedBy
	case caller != nil:
		c.CreatedBy = caller.ID
	}
	return c, nil
}

func communicationFilters(q url.Values, page repository.Page, _ *checks) repository.CommunicationFilters {
	return repository.CommunicationFilters{
		RecipientType: queryString(q, "recipient_type"),
		Page:          page,
	}
}

func (s *Server) createCommunication() http.HandlerFunc {
	return createHandler[models.Communication, communicationCreateRequest](s, "Communication", s.svc.Communications.Create, newCommunicationResponse)
}

func (s *Server) listCommunications() http.HandlerFunc {
	return listHandler(s, "Communication", communicationFilters, s.svc.Communications.List, newCommunicationResponse)
}

func (s *Server) getCommunication() http.HandlerFunc {
	return getHandler(s, "Communication", s.svc.Communications.GetByID, newCommunicationResponse)
}

// handleSendCommunication dispatches a communication once and stamps sent_at.
func (s *Server) handleSendCommunication(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	sent, err := s.svc.SendCommunication(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, r, err, "Communication")
		return
	}
	s.metrics.RecordCommunicationSent()

	s.respondJSON(w, http.StatusOK, newCommunicationResponse(sent))
}

type communicationTemplateResponse struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	Subject           string     `json:"subject"`
	Message           string     `json:"message"`
	RecipientType     string     `json:"recipient_type"`
	CommunicationType string     `json:"communication_type"`
	IsActive          bool       `json:"is_active"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at"`
}

func newCommunicationTemplateResponse(t *models.CommunicationTemplate) communicationTemplateResponse {
	return communicationTemplateResponse{
		ID:                t.ID,
		Name:              t.Name,
		Subject:           t.Subject,
		Message:           t.Message,
		RecipientType:     t.RecipientType,
		CommunicationType: t.CommunicationType,
		IsActive:          t.IsActive,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

type communicationTemplateCreateRequest struct {
	Name              string `json:"name" validate:"required"`
	Subject           string `json:"subject" validate:"required"`
	Message           string `json:"message" validate:"required"`
	RecipientType     string `json:"recipient_type" validate:"required"`
	CommunicationType string `json:"communication_type" validate:"required"`
	IsActive          *bool  `json:"is_active"`
}

func (req communicationTemplateCreateRequest) toModel(*models.User) (*models.CommunicationTemplate, error) {
	return &models.CommunicationTemplate{
		Name:              req.Name,
		Subject:           req.Subject,
		Message:           req.Message,
		RecipientType:     req.RecipientType,
		CommunicationType: req.CommunicationType,
		IsActive:          boolOr(req.IsActive, true),
	}, nil
}

type communicationTemplateUpdateRequest struct {
	Name              patch.Field[string] `json:"name"`
	Subject           patch.Field[string] `json:"subject"`
	Message           patch.Field[string] `json:"message"`
	RecipientType     patch.Field[string] `json:"recipient_type"`
	CommunicationType patch.Field[string] `json:"communication_type"`
	IsActive          patch.Field[bool]   `json:"is_active"`
}

func (req communicationTemplateUpdateRequest) toPatch() (repository.CommunicationTemplatePatch, error) {
	c := &checks{}
	c.text("name", req.Name)
	c.text("subject", req.Subject)
	c.text("message", req.Message)
	c.text("recipient_type", req.RecipientType)
	c.text("communication_type", req.CommunicationType)
	c.add(req.IsActive.NotNull("is_active"))

	return repository.CommunicationTemplatePatch{
		Name:              req.Name,
		Subject:           req.Subject,
		Message:           req.Message,
		RecipientType:     req.RecipientType,
		CommunicationType: req.CommunicationType,
		IsActive:          req.IsActive,
	}, c.err()
}

func communicationTemplateFilters(q url.Values, page repository.Page, _ *checks) repository.CommunicationTemplateFilters {
	return repository.CommunicationTemplateFilters{
		RecipientType:     queryString(q, "recipient_type"),
		CommunicationType: queryString(q, "communication_type"),
		Page:              page,
	}
}

func (s *Server) createCommunicationTemplate() http.HandlerFunc {
	return createHandler[models.CommunicationTemplate, communicationTemplateCreateRequest](s, "Communication template", s.svc.CommunicationTemplates.Create, newCommunicationTemplateResponse)
}

func (s *Server) listCommunicationTemplates() http.HandlerFunc {
	return listHandler(s, "Communication template", communicationTemplateFilters, s.svc.CommunicationTemplates.List, newCommunicationTemplateResponse)
}

func (s *Server) getCommunicationTemplate() http.HandlerFunc {
	return getHandler(s, "Communication template", s.svc.CommunicationTemplates.GetByID, newCommunicationTemplateResponse)
}

func (s *Server) updateCommunicationTemplate() http.HandlerFunc {
	return updateHandler[models.CommunicationTemplate, communicationTemplateUpdateRequest](s, "Communication template", s.svc.CommunicationTemplates.Update, newCommunicationTemplateResponse)
}

func (s *Server) deleteCommunicationTemplate() http.HandlerFunc {
	return deleteHandler(s, "Communication template", s.svc.CommunicationTemplates.Delete)
}
