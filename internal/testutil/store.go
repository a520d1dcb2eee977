// Package testutil provides in-memory repositories for handler and service
// tests.
package testutil

import (
	"fmt"
	"sync"

	"github.com/Kerhoff/storehouse/internal/repository"
)

// store keeps rows in insertion order and hands out copies.
type store[T any] struct {
	mu     sync.Mutex
	rows   []*T
	nextID int64
	id     func(*T) *int64
	name   string
}

func newStore[T any](name string, id func(*T) *int64) *store[T] {
	return &store[T]{name: name, id: id}
}

func (s *store[T]) insert(v T) *T {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	*s.id(&v) = s.nextID
	row := v
	s.rows = append(s.rows, &row)

	out := row
	return &out
}

func (s *store[T]) exists(id int64) bool {
	_, err := s.get(id)
	return err == nil
}

func (s *store[T]) get(id int64) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.rows {
		if *s.id(row) == id {
			out := *row
			return &out, nil
		}
	}
	return nil, fmt.Errorf("%s with ID %d: %w", s.name, id, repository.ErrNotFound)
}

func (s *store[T]) find(match func(*T) bool) (*T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.rows {
		if match(row) {
			out := *row
			return &out, true
		}
	}
	return nil, false
}

func (s *store[T]) list(match func(*T) bool, page repository.Page) []*T {
	s.mu.Lock()
	defer s.mu.Unlock()

	limit := page.Limit
	if limit <= 0 {
		limit = repository.DefaultLimit
	}

	out := []*T{}
	skipped := 0
	for _, row := range s.rows {
		if !match(row) {
			continue
		}
		if skipped < page.Offset {
			skipped++
			continue
		}
		if len(out) == limit {
			break
		}
		c := *row
		out = append(out, &c)
	}
	return out
}

func (s *store[T]) update(id int64, apply func(*T)) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.rows {
		if *s.id(row) == id {
			apply(row)
			out := *row
			return &out, nil
		}
	}
	return nil, fmt.Errorf("%s with ID %d: %w", s.name, id, repository.ErrNotFound)
}

func (s *store[T]) delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, row := range s.rows {
		if *s.id(row) == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%s with ID %d: %w", s.name, id, repository.ErrNotFound)
}

// patchRow applies a partial update. An empty patch reads the row back
// unchanged.
func patchRow[T any, P comparable](s *store[T], id int64, p P, apply func(*T)) (*T, error) {
	var empty P
	if p == empty {
		return s.get(id)
	}
	return s.update(id, apply)
}

func (s *store[T]) has(match func(*T) bool) bool {
	_, ok := s.find(match)
	return ok
}

func eq[T comparable](want *T, got T) bool {
	return want == nil || *want == got
}

func invalidReference(column string, id int64) error {
	return &repository.ConstraintError{
		Err:    repository.ErrInvalidReference,
		Detail: fmt.Sprintf("Key (%s)=(%d) is not present", column, id),
	}
}

func stillReferenced(id int64, table string) error {
	return &repository.ConstraintError{
		Err:    repository.ErrStillReferenced,
		Detail: fmt.Sprintf("Key (id)=(%d) is still referenced from table %q.", id, table),
	}
}
