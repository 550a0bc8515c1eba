package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/crewbase/crewbase-mcp/internal/domain/identity"
	"github.com/crewbase/crewbase-mcp/internal/repository"
)

// UserRepository implements user persistence for SQLite
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user account
func (r *UserRepository) Create(ctx context.Context, user *identity.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, role, active)
		VALUES (?, ?, ?, ?, ?)
	`, user.ID, user.Name, user.Email, string(user.Role), user.Active)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email already registered", repository.ErrInvalidInput)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Get retrieves a user by ID
func (r *UserRepository) Get(ctx context.Context, id string) (*identity.User, error) {
	var user identity.User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, role, active
		FROM users
		WHERE id = ?
	`, id).Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.Active)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetName retrieves a user's display name
func (r *UserRepository) GetName(ctx context.Context, id string) (string, error) {
	var name string
	err := r.db.QueryRowContext(ctx,
		`SELECT name FROM users WHERE id = ?`, id).Scan(&name)

	if err == sql.ErrNoRows {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get user name: %w", err)
	}
	return name, nil
}
