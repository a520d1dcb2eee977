package postgres

import (
	"errors"

	"github.com/lib/pq"

	"github.com/Kerhoff/storehouse/internal/repository"
)

// PostgreSQL error codes, Class 23: Integrity Constraint Violation
const (
	pgErrNotNullViolation    pq.ErrorCode = "23502"
	pgErrForeignKeyViolation pq.ErrorCode = "23503"
	pgErrUniqueViolation     pq.ErrorCode = "23505"
	pgErrCheckViolation      pq.ErrorCode = "23514"
)

// mapError translates integrity violations into repository errors. Other
// errors are returned unchanged.
func mapError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case pgErrUniqueViolation:
		return &repository.ConstraintError{Err: repository.ErrConflict, Detail: pqErr.Detail}
	case pgErrForeignKeyViolation:
		return &repository.ConstraintError{Err: repository.ErrInvalidReference, Detail: pqErr.Detail}
	case pgErrNotNullViolation, pgErrCheckViolation:
		detail := pqErr.Detail
		if detail == "" {
			detail = pqErr.Message
		}
		return &repository.ConstraintError{Err: repository.ErrConstraint, Detail: detail}
	}
	return err
}

// mapDeleteError is mapError for DELETE statements, where a foreign key
// violation means a child row still points at the target.
func mapDeleteError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pgErrForeignKeyViolation {
		return &repository.ConstraintError{Err: repository.ErrStillReferenced, Detail: pqErr.Detail}
	}
	return mapError(err)
}
