package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Kerhoff/storehouse/internal/models"
	"github.com/Kerhoff/storehouse/internal/repository"
)

const userColumns = `id, email, hashed_password, full_name, role, phone, is_active, created_at, updated_at`

type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (email, hashed_password, full_name, role, phone, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns

	return insert[models.User](ctx, r.db, query, "user",
		user.Email,
		user.HashedPassword,
		user.FullName,
		user.Role,
		user.Phone,
		user.IsActive,
	)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return getByID[models.User](ctx, r.db, "users", userColumns, id, "user")
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user := &models.User{}
	if err := r.db.GetContext(ctx, user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", email, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *userRepository) List(ctx context.Context, filters repository.UserFilters) ([]*models.User, error) {
	w := &whereClause{}
	eqIf(w, "role", filters.Role)
	eqIf(w, "is_active", filters.IsActive)

	return list[models.User](ctx, r.db, "users", userColumns, w, filters.Page, "users")
}

func (r *userRepository) Update(ctx context.Context, id int64, p repository.UserPatch) (*models.User, error) {
	s := &setClause{}
	setField(s, "email", p.Email)
	setField(s, "full_name", p.FullName)
	setField(s, "phone", p.Phone)
	setField(s, "role", p.Role)
	setField(s, "is_active", p.IsActive)

	return update[models.User](ctx, r.db, "users", userColumns, s, true, id, "user")
}
