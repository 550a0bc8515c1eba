package sqlite

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/crewbase/crewbase-mcp/internal/domain/identity"
	"github.com/crewbase/crewbase-mcp/internal/repository"
)

func TestUserCreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &identity.User{
		ID:     uuid.NewString(),
		Name:   "Alice",
		Email:  "alice@example.com",
		Role:   identity.RoleUser,
		Active: true,
	}
	require.NoError(t, repo.Create(ctx, user))

	got, err := repo.Get(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Name, got.Name)
	require.Equal(t, identity.RoleUser, got.Role)
	require.True(t, got.Active)

	name, err := repo.GetName(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice", name)
}

func TestUserDuplicateEmail(t *testing.T) {
	db := NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first := &identity.User{ID: uuid.NewString(), Name: "Alice", Email: "alice@example.com", Role: identity.RoleUser, Active: true}
	require.NoError(t, repo.Create(ctx, first))

	dup := &identity.User{ID: uuid.NewString(), Name: "Other", Email: "alice@example.com", Role: identity.RoleUser, Active: true}
	err := repo.Create(ctx, dup)
	require.ErrorIs(t, err, repository.ErrInvalidInput)
}

func TestUserNotFound(t *testing.T) {
	db := NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	_, err := repo.Get(ctx, uuid.NewString())
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.GetName(ctx, uuid.NewString())
	require.ErrorIs(t, err, repository.ErrNotFound)
}
