package analytics

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/crewbase/crewbase-mcp/internal/domain/authz"
	"github.com/crewbase/crewbase-mcp/internal/domain/identity"
)

const callerID = "11111111-1111-4111-8111-111111111111"

type statsRepoMock struct {
	mock.Mock
}

func (m *statsRepoMock) StatsByOwner(ctx context.Context, ownerID string) ([]ProjectStats, error) {
	args := m.Called(ctx, ownerID)
	if stats, ok := args.Get(0).([]ProjectStats); ok {
		return stats, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestDashboardOverview(t *testing.T) {
	now := time.Now()
	rows := []ProjectStats{
		{
			ID: "p1", Name: "Alpha", Status: "ONGOING", Budget: 10000, CreatedAt: now.AddDate(0, 0, -1),
			TotalTasks: 10, CompletedTasks: 4, InProgressTasks: 3, TodoTasks: 3,
			TotalInvoiced: 6000, TotalPaid: 3000,
		},
		{
			ID: "p2", Name: "Beta", Status: "COMPLETE", Budget: 5000, CreatedAt: now,
			TotalTasks: 5, CompletedTasks: 5,
			TotalInvoiced: 4000, TotalPaid: 4000,
		},
	}

	repo := new(statsRepoMock)
	repo.On("StatsByOwner", mock.Anything, callerID).Return(rows, nil)

	svc := NewService(repo, slog.Default())
	overview, err := svc.DashboardOverview(context.Background(), identity.Caller{ID: callerID, Role: identity.RoleUser})
	require.NoError(t, err)

	require.Equal(t, 2, overview.Projects.Total)
	require.Equal(t, 1, overview.Projects.Ongoing)
	require.Equal(t, 1, overview.Projects.Completed)

	require.Equal(t, 15, overview.Tasks.Total)
	require.Equal(t, 9, overview.Tasks.Completed)
	require.InDelta(t, 60.0, overview.Tasks.CompletionRate, 1e-9)

	require.Equal(t, 15000.0, overview.Financials.TotalBudget)
	require.Equal(t, 10000.0, overview.Financials.TotalInvoiced)
	require.Equal(t, 7000.0, overview.Financials.TotalPaid)
	require.Equal(t, 3000.0, overview.Financials.Outstanding)
	require.InDelta(t, 70.0, overview.Financials.CollectionRate, 1e-9)

	// Recent projects newest first.
	require.Len(t, overview.Recent, 2)
	require.Equal(t, "p2", overview.Recent[0].ID)
	require.Equal(t, "p1", overview.Recent[1].ID)
}

func TestDashboardOverviewEmpty(t *testing.T) {
	repo := new(statsRepoMock)
	repo.On("StatsByOwner", mock.Anything, callerID).Return([]ProjectStats{}, nil)

	svc := NewService(repo, slog.Default())
	overview, err := svc.DashboardOverview(context.Background(), identity.Caller{ID: callerID, Role: identity.RoleUser})
	require.NoError(t, err)

	require.Equal(t, 0, overview.Projects.Total)
	require.Equal(t, 0.0, overview.Tasks.CompletionRate)
	require.Equal(t, 0.0, overview.Financials.CollectionRate)
	require.Empty(t, overview.Recent)
}

func TestDashboardOverviewRecentCapped(t *testing.T) {
	now := time.Now()
	rows := make([]ProjectStats, 8)
	for i := range rows {
		rows[i] = ProjectStats{ID: string(rune('a' + i)), CreatedAt: now.Add(time.Duration(i) * time.Minute)}
	}

	repo := new(statsRepoMock)
	repo.On("StatsByOwner", mock.Anything, callerID).Return(rows, nil)

	svc := NewService(repo, slog.Default())
	overview, err := svc.DashboardOverview(context.Background(), identity.Caller{ID: callerID, Role: identity.RoleUser})
	require.NoError(t, err)
	require.Len(t, overview.Recent, 5)
	require.Equal(t, "h", overview.Recent[0].ID)
}

func TestDashboardOverviewInvalidCaller(t *testing.T) {
	repo := new(statsRepoMock)
	svc := NewService(repo, slog.Default())

	_, err := svc.DashboardOverview(context.Background(), identity.Caller{ID: "nope", Role: identity.RoleUser})
	require.ErrorIs(t, err, authz.ErrInvalidID)
	repo.AssertNotCalled(t, "StatsByOwner", mock.Anything, mock.Anything)
}
