package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Kerhoff/storehouse/internal/models"
	"github.com/Kerhoff/storehouse/internal/repository"
)

// createRequest builds a record from a decoded request body. The caller is
// passed in for fields that default to the acting account.
type createRequest[M any] interface {
	toModel(caller *models.User) (*M, error)
}

// updateRequest turns a decoded body into a partial update.
type updateRequest[P any] interface {
	toPatch() (P, error)
}

func createHandler[M any, Req createRequest[M], Resp any](
	s *Server,
	entity string,
	create func(context.Context, *M) (*M, error),
	toResponse func(*M) Resp,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Req
		if ok, msg := s.decodeJSON(r, &req); !ok {
			s.respondError(w, http.StatusBadRequest, msg)
			return
		}
		if err := validateRequest(req); err != nil {
			s.respondServiceError(w, r, err, entity)
			return
		}

		record, err := req.toModel(currentUser(r.Context()))
		if err != nil {
			s.respondServiceError(w, r, err, entity)
			return
		}

		created, err := create(r.Context(), record)
		if err != nil {
			s.respondServiceError(w, r, err, entity)
			return
		}

		s.respondJSON(w, http.StatusCreated, toResponse(created))
	}
}

func getHandler[M any, Resp any](
	s *Server,
	entity string,
	get func(context.Context, int64) (*M, error),
	toResponse func(*M) Resp,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid id")
			return
		}

		record, err := get(r.Context(), id)
		if err != nil {
			s.respondServiceError(w, r, err, entity)
			return
		}

		s.respondJSON(w, http.StatusOK, toResponse(record))
	}
}

// listHandler parses pagination plus the resource's filters, then lists.
func listHandler[M any, F any, Resp any](
	s *Server,
	entity string,
	filters func(q url.Values, page repository.Page, c *checks) F,
	list func(context.Context, F) ([]*M, error),
	toResponse func(*M) Resp,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		c := &checks{}
		f := filters(q, parsePage(q, c), c)
		if err := c.err(); err != nil {
			s.respondServiceError(w, r, err, entity)
			return
		}

		records, err := list(r.Context(), f)
		if err != nil {
			s.respondServiceError(w, r, err, entity)
			return
		}

		out := make([]Resp, 0, len(records))
		for _, record := range records {
			out = append(out, toResponse(record))
		}
		s.respondJSON(w, http.StatusOK, out)
	}
}

func updateHandler[M any, Req updateRequest[P], P any, Resp any](
	s *Server,
	entity string,
	update func(context.Context, int64, P) (*M, error),
	toResponse func(*M) Resp,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid id")
			return
		}

		var req Req
		if ok, msg := s.decodeJSON(r, &req); !ok {
			s.respondError(w, http.StatusBadRequest, msg)
			return
		}

		p, err := req.toPatch()
		if err != nil {
			s.respondServiceError(w, r, err, entity)
			return
		}

		updated, err := update(r.Context(), id, p)
		if err != nil {
			s.respondServiceError(w, r, err, entity)
			return
		}

		s.respondJSON(w, http.StatusOK, toResponse(updated))
	}
}

func deleteHandler(s *Server, entity string, del func(context.Context, int64) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid id")
			return
		}

		if err := del(r.Context(), id); err != nil {
			s.respondServiceError(w, r, err, entity)
			return
		}

		s.respondJSON(w, http.StatusOK, messageResponse{Message: entity + " deleted successfully"})
	}
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
