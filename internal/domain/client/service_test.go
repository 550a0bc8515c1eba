package client_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/crewbase/crewbase-mcp/internal/domain/authz"
	"github.com/crewbase/crewbase-mcp/internal/domain/client"
	"github.com/crewbase/crewbase-mcp/internal/domain/identity"
	"github.com/crewbase/crewbase-mcp/internal/repository/mocks"
)

const (
	callerID = "11111111-1111-4111-8111-111111111111"
	clientID = "22222222-2222-4222-8222-222222222222"
)

func caller() identity.Caller {
	return identity.Caller{ID: callerID, Role: identity.RoleUser}
}

func TestListForCaller(t *testing.T) {
	repo := new(mocks.ClientRepository)
	repo.On("ListForOwner", mock.Anything, callerID).
		Return([]client.Client{{ID: clientID, Name: "Acme", Email: "hello@acme.test", Active: true}}, nil)

	svc := client.NewService(repo, slog.Default())
	clients, err := svc.ListForCaller(context.Background(), caller())
	require.NoError(t, err)
	require.Len(t, clients, 1)
	require.Equal(t, "Acme", clients[0].Name)
}

func TestListRecentDefaultLimit(t *testing.T) {
	repo := new(mocks.ClientRepository)
	repo.On("ListRecent", mock.Anything, callerID, 5).Return([]client.Client{}, nil)

	svc := client.NewService(repo, slog.Default())

	// Zero and negative limits silently fall back to the default.
	_, err := svc.ListRecent(context.Background(), caller(), 0)
	require.NoError(t, err)
	_, err = svc.ListRecent(context.Background(), caller(), -3)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestListRecentExplicitLimit(t *testing.T) {
	repo := new(mocks.ClientRepository)
	repo.On("ListRecent", mock.Anything, callerID, 2).Return([]client.Client{{ID: clientID}}, nil)

	svc := client.NewService(repo, slog.Default())
	clients, err := svc.ListRecent(context.Background(), caller(), 2)
	require.NoError(t, err)
	require.Len(t, clients, 1)
}

func TestHistory(t *testing.T) {
	repo := new(mocks.ClientRepository)
	repo.On("History", mock.Anything, callerID, clientID).
		Return([]client.ProjectHistory{{ID: "p1", Name: "Redesign", Status: "COMPLETE", Budget: 8000}}, nil)

	svc := client.NewService(repo, slog.Default())
	history, err := svc.History(context.Background(), caller(), clientID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, "Redesign", history[0].Name)
}

func TestInvalidIDsRejected(t *testing.T) {
	repo := new(mocks.ClientRepository)
	svc := client.NewService(repo, slog.Default())
	ctx := context.Background()

	_, err := svc.ListForCaller(ctx, identity.Caller{ID: "bad", Role: identity.RoleUser})
	require.ErrorIs(t, err, authz.ErrInvalidID)

	_, err = svc.ListRecent(ctx, identity.Caller{ID: "bad", Role: identity.RoleUser}, 3)
	require.ErrorIs(t, err, authz.ErrInvalidID)

	_, err = svc.History(ctx, caller(), "bad")
	require.ErrorIs(t, err, authz.ErrInvalidID)

	repo.AssertNotCalled(t, "ListForOwner", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "History", mock.Anything, mock.Anything, mock.Anything)
}
