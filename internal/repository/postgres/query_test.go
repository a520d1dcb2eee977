package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Kerhoff/storehouse/internal/patch"
	"github.com/Kerhoff/storehouse/internal/repository"
)

func TestListQuery(t *testing.T) {
	w := &whereClause{}
	status := "pending"
	var agencyID *int64
	eqIf(w, "status", &status)
	eqIf(w, "agency_id", agencyID)

	query, args := listQuery("orders", "id", w, repository.Page{Offset: 20, Limit: 10})

	assert.Equal(t, "SELECT id FROM orders WHERE status = $1 ORDER BY id LIMIT $2 OFFSET $3", query)
	assert.Equal(t, []any{"pending", 10, 20}, args)
}

func TestListQuery_DefaultLimit(t *testing.T) {
	query, args := listQuery("items", "id", &whereClause{}, repository.Page{})

	assert.Equal(t, "SELECT id FROM items ORDER BY id LIMIT $1 OFFSET $2", query)
	assert.Equal(t, []any{repository.DefaultLimit, 0}, args)
}

func TestUpdateQuery(t *testing.T) {
	s := &setClause{}
	setField(s, "total_boxes", patch.Field[int]{})
	setField(s, "status", patch.Of("completed"))
	setField(s, "notes", patch.Null[string]())

	query, args := updateQuery("packing_sessions", "id", s, true, 7)

	assert.Equal(t, "UPDATE packing_sessions SET status = $1, notes = $2, updated_at = NOW() WHERE id = $3 RETURNING id", query)
	assert.Equal(t, []any{"completed", nil, int64(7)}, args)
}

func TestUpdateQuery_WithoutTimestamp(t *testing.T) {
	s := &setClause{}
	setField(s, "quantity", patch.Of(2.5))

	query, _ := updateQuery("order_items", "id", s, false, 1)

	assert.Equal(t, "UPDATE order_items SET quantity = $1 WHERE id = $2 RETURNING id", query)
}
