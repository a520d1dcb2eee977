package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/storehouse/internal/models"
	"github.com/Kerhoff/storehouse/internal/repository"
)

// ErrAlreadySent is returned when a communication has already been dispatched.
var ErrAlreadySent = errors.New("communication already sent")

// Notifier delivers a communication to its recipients.
type Notifier interface {
	Notify(ctx context.Context, c *models.Communication) error
}

// Repositories groups every storage port the service works with.
type Repositories struct {
	Users                  repository.UserRepository
	Agencies               repository.AgencyRepository
	Families               repository.FamilyRepository
	Items                  repository.ItemRepository
	Inventory              repository.InventoryRepository
	WeeklyRequirements     repository.WeeklyRequirementRepository
	PackingLists           repository.PackingListRepository
	PackingListItems       repository.PackingListItemRepository
	PackingSessions        repository.PackingSessionRepository
	VolunteerAssignments   repository.VolunteerAssignmentRepository
	FoodBoxes              repository.FoodBoxRepository
	Orders                 repository.OrderRepository
	OrderItems             repository.OrderItemRepository
	Rotas                  repository.RotaRepository
	RotaAssignments        repository.RotaAssignmentRepository
	Communications         repository.CommunicationRepository
	CommunicationTemplates repository.CommunicationTemplateRepository
}

// Service is the business logic layer. Plain record operations go straight
// to the embedded repositories; authentication and dispatch live here.
type Service struct {
	Repositories

	logger   *logrus.Logger
	notifier Notifier
	auth     AuthConfig
	now      func() time.Time
}

// New creates a new Service with all required dependencies.
func New(logger *logrus.Logger, repos Repositories, notifier Notifier, auth AuthConfig) *Service {
	return &Service{
		Repositories: repos,
		logger:       logger,
		notifier:     notifier,
		auth:         auth,
		now:          time.Now,
	}
}

// SendCommunication dispatches a stored communication through the notifier
// and records when it went out.
func (s *Service) SendCommunication(ctx context.Context, id int64) (*models.Communication, error) {
	c, err := s.Communications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.IsSent() {
		return nil, ErrAlreadySent
	}

	if err := s.notifier.Notify(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to dispatch communication %d: %w", id, err)
	}

	sent, err := s.Communications.MarkSent(ctx, id, s.now().UTC())
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"communication_id": id,
		"recipient_type":   sent.RecipientType,
		"recipients":       len(sent.RecipientIDs),
	}).Info("Communication sent")

	return sent, nil
}
