package repository

import "errors"

var (
	// ErrNotFound is returned when no row matches the given identifier
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a uniqueness constraint is violated
	ErrConflict = errors.New("record already exists")

	// ErrInvalidReference is returned when a foreign key points at a row
	// that does not exist
	ErrInvalidReference = errors.New("referenced record does not exist")

	// ErrStillReferenced is returned when a row cannot be deleted because
	// other rows point at it
	ErrStillReferenced = errors.New("record is still referenced by other records")

	// ErrConstraint is returned when a row violates a NOT NULL or CHECK
	// constraint
	ErrConstraint = errors.New("record violates a constraint")
)

// ConstraintError carries the storage engine's detail for an integrity
// violation. It unwraps to one of the sentinel errors above.
type ConstraintError struct {
	Err    error
	Detail string
}

func (e *ConstraintError) Error() string {
	if e.Detail == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + ": " + e.Detail
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}
