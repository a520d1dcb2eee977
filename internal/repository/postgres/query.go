package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/Kerhoff/storehouse/internal/patch"
	"github.com/Kerhoff/storehouse/internal/repository"
)

// whereClause accumulates equality filters with positional placeholders
type whereClause struct {
	conds []string
	args  []any
}

func (w *whereClause) eq(column string, value any) {
	w.args = append(w.args, value)
	w.conds = append(w.conds, fmt.Sprintf("%s = $%d", column, len(w.args)))
}

// eqIf adds the filter only when v is set
func eqIf[T any](w *whereClause, column string, v *T) {
	if v != nil {
		w.eq(column, *v)
	}
}

func (w *whereClause) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// listQuery builds a paginated SELECT. Rows are ordered by id so that
// pages follow insertion order.
func listQuery(table, columns string, w *whereClause, page repository.Page) (string, []any) {
	limit := page.Limit
	if limit <= 0 {
		limit = repository.DefaultLimit
	}
	offset := page.Offset
	if offset < 0 {
		offset = 0
	}

	args := append([]any{}, w.args...)
	args = append(args, limit, offset)

	query := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY id LIMIT $%d OFFSET $%d",
		columns, table, w.String(), len(args)-1, len(args))
	return query, args
}

// setClause accumulates the assignments of a partial update
type setClause struct {
	assignments []string
	args        []any
}

// setField adds column = value when the field was present in the request
func setField[T any](s *setClause, column string, f patch.Field[T]) {
	if !f.Present {
		return
	}
	s.args = append(s.args, f.SQLValue())
	s.assignments = append(s.assignments, fmt.Sprintf("%s = $%d", column, len(s.args)))
}

func (s *setClause) empty() bool {
	return len(s.assignments) == 0
}

// updateQuery builds UPDATE ... RETURNING. touch sets updated_at for
// tables that track it.
func updateQuery(table, columns string, s *setClause, touch bool, id int64) (string, []any) {
	assignments := append([]string{}, s.assignments...)
	if touch {
		assignments = append(assignments, "updated_at = NOW()")
	}
	args := append([]any{}, s.args...)
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		table, strings.Join(assignments, ", "), len(args), columns)
	return query, args
}

func getByID[T any](ctx context.Context, db *sqlx.DB, table, columns string, id int64, entity string) (*T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", columns, table)

	var dest T
	if err := db.GetContext(ctx, &dest, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s with ID %d: %w", entity, id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get %s by ID: %w", entity, err)
	}
	return &dest, nil
}

func list[T any](ctx context.Context, db *sqlx.DB, table, columns string, w *whereClause, page repository.Page, entity string) ([]*T, error) {
	query, args := listQuery(table, columns, w, page)

	rows := []*T{}
	if err := db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", entity, err)
	}
	return rows, nil
}

func update[T any](ctx context.Context, db *sqlx.DB, table, columns string, s *setClause, touch bool, id int64, entity string) (*T, error) {
	// Nothing to change: report the current row, or not found.
	if s.empty() {
		return getByID[T](ctx, db, table, columns, id, entity)
	}

	query, args := updateQuery(table, columns, s, touch, id)

	var dest T
	if err := db.GetContext(ctx, &dest, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s with ID %d: %w", entity, id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update %s: %w", entity, mapError(err))
	}
	return &dest, nil
}

func deleteByID(ctx context.Context, db *sqlx.DB, table string, id int64, entity string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", table)

	result, err := db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", entity, mapDeleteError(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%s with ID %d: %w", entity, id, repository.ErrNotFound)
	}

	return nil
}

// insert runs an INSERT ... RETURNING statement and maps the returned row
func insert[T any](ctx context.Context, db *sqlx.DB, query string, entity string, args ...any) (*T, error) {
	var dest T
	if err := db.GetContext(ctx, &dest, query, args...); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", entity, mapError(err))
	}
	return &dest, nil
}
