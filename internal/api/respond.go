package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Kerhoff/storehouse/internal/repository"
	"github.com/Kerhoff/storehouse/internal/service"
)

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.logger.WithError(err).Error("failed to encode JSON response")
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, errorResponse{Error: message})
}

func (s *Server) respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	s.respondError(w, http.StatusUnauthorized, message)
}

// respondServiceError maps domain errors onto status codes. entity names the
// record kind for not-found messages.
func (s *Server) respondServiceError(w http.ResponseWriter, r *http.Request, err error, entity string) {
	var (
		verr *validationError
		cerr *repository.ConstraintError
	)

	switch {
	case errors.As(err, &verr):
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Error(), Details: verr.details()})
	case errors.Is(err, repository.ErrNotFound):
		s.respondError(w, http.StatusNotFound, entity+" not found")
	case errors.Is(err, repository.ErrStillReferenced):
		s.respondError(w, http.StatusConflict, entity+" is still referenced by other records")
	case errors.As(err, &cerr):
		s.respondError(w, http.StatusBadRequest, cerr.Error())
	case errors.Is(err, service.ErrEmailTaken):
		s.respondError(w, http.StatusBadRequest, "Email already registered")
	case errors.Is(err, service.ErrAlreadySent), errors.Is(err, service.ErrPasswordTooLong):
		s.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		s.respondUnauthorized(w, "Incorrect email or password")
	case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrInactiveAccount):
		s.respondUnauthorized(w, err.Error())
	default:
		s.logger.WithError(err).WithFields(requestFields(r)).Error("request failed")
		s.respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON reads the request body into dst and returns an error message on
// failure. The caller should return immediately when ok == false.
func (s *Server) decodeJSON(r *http.Request, dst any) (ok bool, errMsg string) {
	if r.Body == nil || r.Body == http.NoBody {
		return false, "request body is empty"
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return false, fmt.Sprintf("invalid JSON: %v", err)
	}
	return true, ""
}

// pathID extracts the {id} path value and converts it to int64.
func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		return 0, fmt.Errorf("missing id in path")
	}
	return strconv.ParseInt(raw, 10, 64)
}
