package api

import (
	"net/http"
	"net/url"
	"time"

	"github.com/Kerhoff/storehouse/internal/models"
	"github.com/Kerhoff/storehouse/internal/patch"
	"github.com/Kerhoff/storehouse/internal/repository"
)

// userResponse never carries the password hash.
type userResponse struct {
	ID        int64       `json:"id"`
	Email     string      `json:"email"`
	FullName  string      `json:"full_name"`
	Role      models.Role `json:"role"`
	Phone     *string     `json:"phone"`
	IsActive  bool        `json:"is_active"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt *time.Time  `json:"updated_at"`
}

func newUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		Phone:     u.Phone,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type userUpdateRequest struct {
	Email    patch.Field[string]      `json:"email"`
	FullName patch.Field[string]      `json:"full_name"`
	Phone    patch.Field[string]      `json:"phone"`
	Role     patch.Field[models.Role] `json:"role"`
	IsActive patch.Field[bool]        `json:"is_active"`
}

func (req userUpdateRequest) toPatch() (repository.UserPatch, error) {
	c := &checks{}
	c.text("email", req.Email)
	c.email("email", req.Email.Value, req.Email.HasValue())
	c.text("full_name", req.FullName)
	c.add(req.Role.NotNull("role"))
	c.enum("role", req.Role.HasValue(), req.Role.Value.Valid())
	c.add(req.IsActive.NotNull("is_active"))

	return repository.UserPatch{
		Email:    req.Email,
		FullName: req.FullName,
		Phone:    req.Phone,
		Role:     req.Role,
		IsActive: req.IsActive,
	}, c.err()
}

func userFilters(q url.Values, page repository.Page, c *checks) repository.UserFilters {
	return repository.UserFilters{
		Role:     queryEnum(q, "role", models.Role.Valid, c),
		IsActive: queryBool(q, "is_active", c),
		Page:     page,
	}
}

func (s *Server) listUsers() http.HandlerFunc {
	return listHandler(s, "User", userFilters, s.svc.Users.List, newUserResponse)
}

func (s *Server) getUser() http.HandlerFunc {
	return getHandler(s, "User", s.svc.Users.GetByID, newUserResponse)
}

func (s *Server) updateUser() http.HandlerFunc {
	return updateHandler[models.User, userUpdateRequest](s, "User", s.svc.Users.Update, newUserResponse)
}
