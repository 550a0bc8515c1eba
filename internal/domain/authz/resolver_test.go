package authz

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/crewbase/crewbase-mcp/internal/domain/identity"
	"github.com/crewbase/crewbase-mcp/internal/repository"
)

const (
	ownerID   = "11111111-1111-4111-8111-111111111111"
	clientID  = "22222222-2222-4222-8222-222222222222"
	memberID  = "33333333-3333-4333-8333-333333333333"
	otherID   = "44444444-4444-4444-8444-444444444444"
	projectID = "55555555-5555-4555-8555-555555555555"
)

type membershipSourceMock struct {
	mock.Mock
}

func (m *membershipSourceMock) GetMembership(ctx context.Context, projectID string) (Projection, error) {
	args := m.Called(ctx, projectID)
	if proj, ok := args.Get(0).(Projection); ok {
		return proj, args.Error(1)
	}
	return Projection{}, args.Error(1)
}

func testProjection() Projection {
	return Projection{
		OwnerID:   ownerID,
		ClientID:  clientID,
		MemberIDs: []string{memberID},
	}
}

func newResolver(source MembershipSource) *Resolver {
	return NewResolver(source, slog.Default())
}

func TestResolve(t *testing.T) {
	source := new(membershipSourceMock)
	source.On("GetMembership", mock.Anything, projectID).Return(testProjection(), nil)

	r := newResolver(source)

	m, err := r.Resolve(context.Background(), ownerID, projectID)
	require.NoError(t, err)
	require.True(t, m.IsOwner)

	m, err = r.Resolve(context.Background(), clientID, projectID)
	require.NoError(t, err)
	require.True(t, m.IsClient)

	m, err = r.Resolve(context.Background(), memberID, projectID)
	require.NoError(t, err)
	require.True(t, m.IsMember)
}

func TestResolveNoRelationship(t *testing.T) {
	source := new(membershipSourceMock)
	source.On("GetMembership", mock.Anything, projectID).Return(testProjection(), nil)

	_, err := newResolver(source).Resolve(context.Background(), otherID, projectID)
	require.ErrorIs(t, err, ErrNotAuthorized)
}

// An absent project is indistinguishable from a denied one: both surface as
// ErrNotAuthorized so existence is never leaked.
func TestResolveProjectAbsent(t *testing.T) {
	source := new(membershipSourceMock)
	source.On("GetMembership", mock.Anything, projectID).Return(Projection{}, repository.ErrNotFound)

	_, err := newResolver(source).Resolve(context.Background(), ownerID, projectID)
	require.ErrorIs(t, err, ErrNotAuthorized)
	require.NotContains(t, err.Error(), "not found")
}

func TestResolveInvalidIDs(t *testing.T) {
	source := new(membershipSourceMock)
	r := newResolver(source)

	_, err := r.Resolve(context.Background(), "garbage", projectID)
	require.ErrorIs(t, err, ErrInvalidID)

	_, err = r.Resolve(context.Background(), ownerID, "garbage")
	require.ErrorIs(t, err, ErrInvalidID)

	// No query may be issued for malformed input.
	source.AssertNotCalled(t, "GetMembership", mock.Anything, mock.Anything)
}

func TestResolveSourceFailure(t *testing.T) {
	source := new(membershipSourceMock)
	source.On("GetMembership", mock.Anything, projectID).Return(Projection{}, errors.New("disk gone"))

	_, err := newResolver(source).Resolve(context.Background(), ownerID, projectID)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotAuthorized)
}

func TestGuardAuthorize(t *testing.T) {
	source := new(membershipSourceMock)
	source.On("GetMembership", mock.Anything, projectID).Return(testProjection(), nil)
	guard := NewGuard(newResolver(source))
	ctx := context.Background()

	owner := identity.Caller{ID: ownerID, Role: identity.RoleUser}
	clientCaller := identity.Caller{ID: clientID, Role: identity.RoleClient}
	stranger := identity.Caller{ID: otherID, Role: identity.RoleUser}

	_, err := guard.Authorize(ctx, owner, projectID, OpMutateProject)
	require.NoError(t, err)

	_, err = guard.Authorize(ctx, clientCaller, projectID, OpViewFinancials)
	require.NoError(t, err)

	_, err = guard.Authorize(ctx, clientCaller, projectID, OpMutateProject)
	require.ErrorIs(t, err, ErrNotAuthorized)

	_, err = guard.Authorize(ctx, stranger, projectID, OpReadProject)
	require.ErrorIs(t, err, ErrNotAuthorized)
}

// Role-granted operations skip membership resolution entirely.
func TestGuardAdminBypass(t *testing.T) {
	source := new(membershipSourceMock)
	guard := NewGuard(newResolver(source))

	admin := identity.Caller{ID: otherID, Role: identity.RoleAdmin}
	_, err := guard.Authorize(context.Background(), admin, projectID, OpReadProject)
	require.NoError(t, err)

	source.AssertNotCalled(t, "GetMembership", mock.Anything, mock.Anything)
}

func TestGuardDeleteIsOwnerOnly(t *testing.T) {
	source := new(membershipSourceMock)
	source.On("GetMembership", mock.Anything, projectID).Return(testProjection(), nil)
	guard := NewGuard(newResolver(source))
	ctx := context.Background()

	owner := identity.Caller{ID: ownerID, Role: identity.RoleUser}
	_, err := guard.Authorize(ctx, owner, projectID, OpDeleteProject)
	require.NoError(t, err)

	// ADMIN role does not override ownership for deletion.
	admin := identity.Caller{ID: otherID, Role: identity.RoleAdmin}
	_, err = guard.Authorize(ctx, admin, projectID, OpDeleteProject)
	require.ErrorIs(t, err, ErrNotAuthorized)
}

func TestGuardAuthorizeProjection(t *testing.T) {
	guard := NewGuard(newResolver(new(membershipSourceMock)))

	clientCaller := identity.Caller{ID: clientID, Role: identity.RoleClient}
	m, err := guard.AuthorizeProjection(clientCaller, testProjection(), OpViewFinancials)
	require.NoError(t, err)
	require.True(t, m.IsClient)

	member := identity.Caller{ID: memberID, Role: identity.RoleMember}
	_, err = guard.AuthorizeProjection(member, testProjection(), OpViewFinancials)
	require.ErrorIs(t, err, ErrNotAuthorized)
}
