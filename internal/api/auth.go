package api

import (
	"mime"
	"net/http"

	"github.com/Kerhoff/storehouse/internal/models"
	"github.com/Kerhoff/storehouse/internal/service"
)

type registerRequest struct {
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required"`
	FullName string      `json:"full_name" validate:"required"`
	Role     models.Role `json:"role" validate:"required"`
	Phone    *string     `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	if err := validateRequest(req); err != nil {
		s.respondServiceError(w, r, err, "User")
		return
	}
	c := &checks{}
	c.enum("role", true, req.Role.Valid())
	if len(req.Password) > service.MaxPasswordBytes {
		c.fail("password", "must be at most %d bytes", service.MaxPasswordBytes)
	}
	if err := c.err(); err != nil {
		s.respondServiceError(w, r, err, "User")
		return
	}

	user, err := s.svc.Register(r.Context(), service.Registration{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
		Phone:    req.Phone,
	})
	if err != nil {
		s.respondServiceError(w, r, err, "User")
		return
	}

	s.respondJSON(w, http.StatusCreated, newUserResponse(user))
}

// handleLogin accepts a JSON body or the OAuth2 password form
// (username, password).
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if isForm(r) {
		if err := r.ParseForm(); err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid form body")
			return
		}
		req.Email = r.PostForm.Get("username")
		req.Password = r.PostForm.Get("password")
	} else if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	if err := validateRequest(req); err != nil {
		s.respondServiceError(w, r, err, "User")
		return
	}

	token, err := s.svc.Login(r.Context(), req.Email, req.Password)
	s.metrics.RecordLogin(err == nil)
	if err != nil {
		s.respondServiceError(w, r, err, "User")
		return
	}

	s.respondJSON(w, http.StatusOK, tokenResponse{AccessToken: token.AccessToken, TokenType: "bearer"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, newUserResponse(currentUser(r.Context())))
}

func isForm(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/x-www-form-urlencoded"
}
