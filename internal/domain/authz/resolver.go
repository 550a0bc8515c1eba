package authz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/crewbase/crewbase-mcp/internal/domain/identity"
	"github.com/crewbase/crewbase-mcp/internal/repository"
)

// MembershipSource loads the ownership/client/member projection of a
// project. It is the resolver's single storage dependency.
type MembershipSource interface {
	GetMembership(ctx context.Context, projectID string) (Projection, error)
}

// Resolver materializes a caller's Membership for one project.
type Resolver struct {
	source MembershipSource
	logger *slog.Logger
}

// NewResolver creates a membership resolver.
func NewResolver(source MembershipSource, logger *slog.Logger) *Resolver {
	return &Resolver{source: source, logger: logger}
}

// Resolve determines the caller's relationship to a project with exactly one
// round trip to the membership source.
//
// Malformed identifiers fail with ErrInvalidID before any query is issued.
// A caller with no relationship gets ErrNotAuthorized rather than an
// all-false membership; an absent project surfaces the same way so that
// callers without access are never told whether the project exists.
func (r *Resolver) Resolve(ctx context.Context, callerID, projectID string) (Membership, error) {
	if !ValidID(callerID) {
		return Membership{}, fmt.Errorf("%w: caller id %q", ErrInvalidID, callerID)
	}
	if !ValidID(projectID) {
		return Membership{}, fmt.Errorf("%w: project id %q", ErrInvalidID, projectID)
	}

	proj, err := r.source.GetMembership(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Membership{}, fmt.Errorf("%w: you do not have permission to access this project", ErrNotAuthorized)
		}
		return Membership{}, fmt.Errorf("loading membership projection: %w", err)
	}

	m := MembershipOf(callerID, proj)
	if !m.Any() {
		return Membership{}, fmt.Errorf("%w: you do not have permission to access this project", ErrNotAuthorized)
	}
	return m, nil
}

// Guard combines the resolver with the policy table. Services use it as the
// single entry point for per-project authorization.
type Guard struct {
	resolver *Resolver
}

// NewGuard creates a policy guard over a resolver.
func NewGuard(resolver *Resolver) *Guard {
	return &Guard{resolver: resolver}
}

// Authorize checks op for caller against projectID. When the policy grants
// op on role alone (the ADMIN read bypass), membership resolution is skipped
// entirely and a zero Membership is returned. Otherwise the caller's
// membership is resolved and the policy predicate evaluated.
func (g *Guard) Authorize(ctx context.Context, caller identity.Caller, projectID string, op Operation) (Membership, error) {
	if !ValidID(caller.ID) {
		return Membership{}, fmt.Errorf("%w: caller id %q", ErrInvalidID, caller.ID)
	}
	if !ValidID(projectID) {
		return Membership{}, fmt.Errorf("%w: project id %q", ErrInvalidID, projectID)
	}

	if AllowsByRole(op, caller) {
		return Membership{}, nil
	}

	m, err := g.resolver.Resolve(ctx, caller.ID, projectID)
	if err != nil {
		return Membership{}, err
	}
	if !Allows(op, caller, m) {
		return Membership{}, fmt.Errorf("%w: %s", ErrNotAuthorized, Reason(op))
	}
	return m, nil
}

// AuthorizeProjection evaluates op against a projection already in hand,
// without a storage round trip. Used when the caller has fetched a record
// that embeds the project's ownership fields, such as an invoice detail.
func (g *Guard) AuthorizeProjection(caller identity.Caller, proj Projection, op Operation) (Membership, error) {
	m := MembershipOf(caller.ID, proj)
	if !Allows(op, caller, m) {
		return Membership{}, fmt.Errorf("%w: %s", ErrNotAuthorized, Reason(op))
	}
	return m, nil
}
