package client

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/crewbase/crewbase-mcp/internal/domain/authz"
	"github.com/crewbase/crewbase-mcp/internal/domain/identity"
)

const defaultRecentLimit = 5

// Repository provides client lookups scoped to a project owner.
type Repository interface {
	ListForOwner(ctx context.Context, ownerID string) ([]Client, error)
	ListRecent(ctx context.Context, ownerID string, limit int) ([]Client, error)
	History(ctx context.Context, ownerID, clientID string) ([]ProjectHistory, error)
}

// Service exposes owner-scoped client queries. Scoping to the caller's own
// projects is the authorization model here; there is no cross-owner path.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a client service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListForCaller returns all clients attached to the caller's projects.
func (s *Service) ListForCaller(ctx context.Context, caller identity.Caller) ([]Client, error) {
	if !authz.ValidID(caller.ID) {
		return nil, fmt.Errorf("%w: caller id %q", authz.ErrInvalidID, caller.ID)
	}
	clients, err := s.repo.ListForOwner(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	return clients, nil
}

// ListRecent returns the caller's most recently engaged clients, ordered by
// latest project creation.
func (s *Service) ListRecent(ctx context.Context, caller identity.Caller, limit int) ([]Client, error) {
	if !authz.ValidID(caller.ID) {
		return nil, fmt.Errorf("%w: caller id %q", authz.ErrInvalidID, caller.ID)
	}
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	clients, err := s.repo.ListRecent(ctx, caller.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent clients: %w", err)
	}
	return clients, nil
}

// History returns the caller's project history with one client.
func (s *Service) History(ctx context.Context, caller identity.Caller, clientID string) ([]ProjectHistory, error) {
	if !authz.ValidID(caller.ID) {
		return nil, fmt.Errorf("%w: caller id %q", authz.ErrInvalidID, caller.ID)
	}
	if !authz.ValidID(clientID) {
		return nil, fmt.Errorf("%w: client id %q", authz.ErrInvalidID, clientID)
	}
	history, err := s.repo.History(ctx, caller.ID, clientID)
	if err != nil {
		return nil, fmt.Errorf("loading client history: %w", err)
	}
	return history, nil
}
