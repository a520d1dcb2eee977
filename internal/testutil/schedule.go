package testutil

import (
	"context"
	"time"

	"github.com/Kerhoff/storehouse/internal/models"
	"github.com/Kerhoff/storehouse/internal/repository"
)

// WeeklyRequirements is an in-memory repository.WeeklyRequirementRepository
type WeeklyRequirements struct {
	s        *store[models.WeeklyRequirement]
	agencies *Agencies
}

func (r *WeeklyRequirements) Create(_ context.Context, w *models.WeeklyRequirement) (*models.WeeklyRequirement, error) {
	if !r.agencies.s.exists(w.AgencyID) {
		return nil, invalidReference("agency_id", w.AgencyID)
	}
	row := *w
	if row.Status == "" {
		row.Status = models.DefaultRequirementStatus
	}
	row.CreatedAt = time.Now().UTC()
	return r.s.insert(row), nil
}

func (r *WeeklyRequirements) GetByID(_ context.Context, id int64) (*models.WeeklyRequirement, error) {
	return r.s.get(id)
}

func (r *WeeklyRequirements) List(_ context.Context, f repository.WeeklyRequirementFilters) ([]*models.WeeklyRequirement, error) {
	return r.s.list(func(w *models.WeeklyRequirement) bool {
		return eq(f.AgencyID, w.AgencyID) && eq(f.Status, w.Status)
	}, f.Page), nil
}

func (r *WeeklyRequirements) Update(_ context.Context, id int64, p repository.WeeklyRequirementPatch) (*models.WeeklyRequirement, error) {
	return patchRow(r.s, id, p, func(w *models.WeeklyRequirement) {
		if p.TotalFamilies.HasValue() {
			w.TotalFamilies = p.TotalFamilies.Value
		}
		if p.TotalBoxes.HasValue() {
			w.TotalBoxes = p.TotalBoxes.Value
		}
		if p.SpecialRequests.Present {
			w.SpecialRequests = p.SpecialRequests.Ptr()
		}
		if p.Status.HasValue() {
			w.Status = p.Status.Value
		}
		w.UpdatedAt = now()
	})
}

// PackingSessions is an in-memory repository.PackingSessionRepository
type PackingSessions struct {
	s     *store[models.PackingSession]
	lists *PackingLists
}

func (r *PackingSessions) Create(_ context.Context, ps *models.PackingSession) (*models.PackingSession, error) {
	if !r.lists.s.exists(ps.PackingListID) {
		return nil, invalidReference("packing_list_id", ps.PackingListID)
	}
	row := *ps
	if row.Status == "" {
		row.Status = models.PackingStatusScheduled
	}
	row.CreatedAt = time.Now().UTC()
	return r.s.insert(row), nil
}

func (r *PackingSessions) GetByID(_ context.Context, id int64) (*models.PackingSession, error) {
	return r.s.get(id)
}

func (r *PackingSessions) List(_ context.Context, f repository.PackingSessionFilters) ([]*models.PackingSession, error) {
	return r.s.list(func(ps *models.PackingSession) bool {
		return eq(f.PackingListID, ps.PackingListID) && eq(f.Status, ps.Status)
	}, f.Page), nil
}

func (r *PackingSessions) Update(_ context.Context, id int64, p repository.PackingSessionPatch) (*models.PackingSession, error) {
	return patchRow(r.s, id, p, func(ps *models.PackingSession) {
		if p.ScheduledDate.HasValue() {
			ps.ScheduledDate = p.ScheduledDate.Value
		}
		if p.Status.HasValue() {
			ps.Status = p.Status.Value
		}
		if p.Notes.Present {
			ps.Notes = p.Notes.Ptr()
		}
		ps.UpdatedAt = now()
	})
}

// VolunteerAssignments is an in-memory repository.VolunteerAssignmentRepository
type VolunteerAssignments struct {
	s        *store[models.VolunteerAssignment]
	sessions *PackingSessions
	users    *Users
}

func (r *VolunteerAssignments) Create(_ context.Context, a *models.VolunteerAssignment) (*models.VolunteerAssignment, error) {
	if !r.sessions.s.exists(a.PackingSessionID) {
		return nil, invalidReference("packing_session_id", a.PackingSessionID)
	}
	if !r.users.s.exists(a.UserID) {
		return nil, invalidReference("user_id", a.UserID)
	}
	row := *a
	row.CreatedAt = time.Now().UTC()
	return r.s.insert(row), nil
}

func (r *VolunteerAssignments) GetByID(_ context.Context, id int64) (*models.VolunteerAssignment, error) {
	return r.s.get(id)
}

func (r *VolunteerAssignments) List(_ context.Context, f repository.VolunteerAssignmentFilters) ([]*models.VolunteerAssignment, error) {
	return r.s.list(func(a *models.VolunteerAssignment) bool {
		return eq(f.PackingSessionID, a.PackingSessionID) && eq(f.UserID, a.UserID)
	}, f.Page), nil
}

func (r *VolunteerAssignments) Update(_ context.Context, id int64, p repository.VolunteerAssignmentPatch) (*models.VolunteerAssignment, error) {
	return patchRow(r.s, id, p, func(a *models.VolunteerAssignment) {
		if p.Role.HasValue() {
			a.Role = p.Role.Value
		}
		if p.Confirmed.HasValue() {
			a.Confirmed = p.Confirmed.Value
		}
		if p.Notes.Present {
			a.Notes = p.Notes.Ptr()
		}
	})
}

// FoodBoxes is an in-memory repository.FoodBoxRepository
type FoodBoxes struct {
	s        *store[models.FoodBox]
	families *Families
	sessions *PackingSessions
}

func (r *FoodBoxes) Create(_ context.Context, b *models.FoodBox) (*models.FoodBox, error) {
	if !r.families.s.exists(b.FamilyID) {
		return nil, invalidReference("family_id", b.FamilyID)
	}
	if !r.sessions.s.exists(b.PackingSessionID) {
		return nil, invalidReference("packing_session_id", b.PackingSessionID)
	}
	row := *b
	if row.Status == "" {
		row.Status = models.DefaultFoodBoxStatus
	}
	row.CreatedAt = time.Now().UTC()
	return r.s.insert(row), nil
}

func (r *FoodBoxes) GetByID(_ context.Context, id int64) (*models.FoodBox, error) {
	return r.s.get(id)
}

func (r *FoodBoxes) List(_ context.Context, f repository.FoodBoxFilters) ([]*models.FoodBox, error) {
	return r.s.list(func(b *models.FoodBox) bool {
		return eq(f.FamilyID, b.FamilyID) && eq(f.PackingSessionID, b.PackingSessionID) && eq(f.Status, b.Status)
	}, f.Page), nil
}

func (r *FoodBoxes) Update(_ context.Context, id int64, p repository.FoodBoxPatch) (*models.FoodBox, error) {
	return patchRow(r.s, id, p, func(b *models.FoodBox) {
		if p.Status.HasValue() {
			b.Status = p.Status.Value
		}
		if p.CollectedAt.Present {
			b.CollectedAt = p.CollectedAt.Ptr()
		}
		if p.CollectedBy.Present {
			b.CollectedBy = p.CollectedBy.Ptr()
		}
		if p.Notes.Present {
			b.Notes = p.Notes.Ptr()
		}
		b.UpdatedAt = now()
	})
}

// Rotas is an in-memory repository.RotaRepository
type Rotas struct{ s *store[models.Rota] }

func (r *Rotas) Create(_ context.Context, rota *models.Rota) (*models.Rota, error) {
	row := *rota
	row.CreatedAt = time.Now().UTC()
	return r.s.insert(row), nil
}

func (r *Rotas) GetByID(_ context.Context, id int64) (*models.Rota, error) {
	return r.s.get(id)
}

func (r *Rotas) List(_ context.Context, f repository.RotaFilters) ([]*models.Rota, error) {
	return r.s.list(func(x *models.Rota) bool {
		return eq(f.RotaType, x.RotaType) && eq(f.IsActive, x.IsActive)
	}, f.Page), nil
}

func (r *Rotas) Update(_ context.Context, id int64, p repository.RotaPatch) (*models.Rota, error) {
	return patchRow(r.s, id, p, func(x *models.Rota) {
		if p.QuarterStart.HasValue() {
			x.QuarterStart = p.QuarterStart.Value
		}
		if p.QuarterEnd.HasValue() {
			x.QuarterEnd = p.QuarterEnd.Value
		}
		if p.IsActive.HasValue() {
			x.IsActive = p.IsActive.Value
		}
		x.UpdatedAt = now()
	})
}

// RotaAssignments is an in-memory repository.RotaAssignmentRepository
type RotaAssignments struct {
	s     *store[models.RotaAssignment]
	rotas *Rotas
	users *Users
}

func (r *RotaAssignments) Create(_ context.Context, a *models.RotaAssignment) (*models.RotaAssignment, error) {
	if !r.rotas.s.exists(a.RotaID) {
		return nil, invalidReference("rota_id", a.RotaID)
	}
	if !r.users.s.exists(a.UserID) {
		return nil, invalidReference("user_id", a.UserID)
	}
	row := *a
	row.CreatedAt = time.Now().UTC()
	return r.s.insert(row), nil
}

func (r *RotaAssignments) GetByID(_ context.Context, id int64) (*models.RotaAssignment, error) {
	return r.s.get(id)
}

func (r *RotaAssignments) List(_ context.Context, f repository.RotaAssignmentFilters) ([]*models.RotaAssignment, error) {
	return r.s.list(func(a *models.RotaAssignment) bool {
		return eq(f.RotaID, a.RotaID) && eq(f.UserID, a.UserID)
	}, f.Page), nil
}

func (r *RotaAssignments) Update(_ context.Context, id int64, p repository.RotaAssignmentPatch) (*models.RotaAssignment, error) {
	return patchRow(r.s, id, p, func(a *models.RotaAssignment) {
		if p.WeekStart.HasValue() {
			a.WeekStart = p.WeekStart.Value
		}
		if p.WeekEnd.HasValue() {
			a.WeekEnd = p.WeekEnd.Value
		}
		if p.Role.HasValue() {
			a.Role = p.Role.Value
		}
		if p.Confirmed.HasValue() {
			a.Confirmed = p.Confirmed.Value
		}
		if p.Notes.Present {
			a.Notes = p.Notes.Ptr()
		}
	})
}

func (r *RotaAssignments) Delete(_ context.Context, id int64) error {
	return r.s.delete(id)
}

// CommunicationTemplates is an in-memory repository.CommunicationTemplateRepository
type CommunicationTemplates struct {
	s *store[models.CommunicationTemplate]
}

func (r *CommunicationTemplates) Create(_ context.Context, t *models.CommunicationTemplate) (*models.CommunicationTemplate, error) {
	row := *t
	row.CreatedAt = time.Now().UTC()
	return r.s.insert(row), nil
}

func (r *CommunicationTemplates) GetByID(_ context.Context, id int64) (*models.CommunicationTemplate, error) {
	return r.s.get(id)
}

func (r *CommunicationTemplates) List(_ context.Context, f repository.CommunicationTemplateFilters) ([]*models.CommunicationTemplate, error) {
	return r.s.list(func(t *models.CommunicationTemplate) bool {
		return eq(f.RecipientType, t.RecipientType) && eq(f.CommunicationType, t.CommunicationType)
	}, f.Page), nil
}

func (r *CommunicationTemplates) Update(_ context.Context, id int64, p repository.CommunicationTemplatePatch) (*models.CommunicationTemplate, error) {
	return patchRow(r.s, id, p, func(t *models.CommunicationTemplate) {
		if p.Name.HasValue() {
			t.Name = p.Name.Value
		}
		if p.Subject.HasValue() {
			t.Subject = p.Subject.Value
		}
		if p.Message.HasValue() {
			t.Message = p.Message.Value
		}
		if p.RecipientType.HasValue() {
			t.RecipientType = p.RecipientType.Value
		}
		if p.CommunicationType.HasValue() {
			t.CommunicationType = p.CommunicationType.Value
		}
		if p.IsActive.HasValue() {
			t.IsActive = p.IsActive.Value
		}
		t.UpdatedAt = now()
	})
}

func (r *CommunicationTemplates) Delete(_ context.Context, id int64) error {
	return r.s.delete(id)
}

var (
	_ repository.UserRepository                  = (*Users)(nil)
	_ repository.AgencyRepository                = (*Agencies)(nil)
	_ repository.FamilyRepository                = (*Families)(nil)
	_ repository.ItemRepository                  = (*Items)(nil)
	_ repository.InventoryRepository             = (*Inventory)(nil)
	_ repository.WeeklyRequirementRepository     = (*WeeklyRequirements)(nil)
	_ repository.PackingListRepository           = (*PackingLists)(nil)
	_ repository.PackingListItemRepository       = (*PackingListItems)(nil)
	_ repository.PackingSessionRepository        = (*PackingSessions)(nil)
	_ repository.VolunteerAssignmentRepository   = (*VolunteerAssignments)(nil)
	_ repository.FoodBoxRepository               = (*FoodBoxes)(nil)
	_ repository.OrderRepository                 = (*Orders)(nil)
	_ repository.OrderItemRepository             = (*OrderItems)(nil)
	_ repository.RotaRepository                  = (*Rotas)(nil)
	_ repository.RotaAssignmentRepository        = (*RotaAssignments)(nil)
	_ repository.CommunicationRepository         = (*Communications)(nil)
	_ repository.CommunicationTemplateRepository = (*CommunicationTemplates)(nil)
)
