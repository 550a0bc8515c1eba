package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/crewbase/crewbase-mcp/internal/domain/authz"
	"github.com/crewbase/crewbase-mcp/internal/domain/identity"
)

// StatsRepository loads pre-aggregated per-project rows for a caller's
// owned projects.
type StatsRepository interface {
	StatsByOwner(ctx context.Context, ownerID string) ([]ProjectStats, error)
}

// Service computes caller-scoped dashboard aggregates. The scope is
// ownership: the dashboard only ever covers projects the caller owns, so no
// per-project policy resolution is needed.
type Service struct {
	repo   StatsRepository
	logger *slog.Logger
}

// NewService creates an analytics service.
func NewService(repo StatsRepository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// DashboardOverview aggregates projects, tasks, and financials across the
// caller's owned projects.
func (s *Service) DashboardOverview(ctx context.Context, caller identity.Caller) (*DashboardOverview, error) {
	if !authz.ValidID(caller.ID) {
		return nil, fmt.Errorf("%w: caller id %q", authz.ErrInvalidID, caller.ID)
	}

	rows, err := s.repo.StatsByOwner(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("loading owner stats: %w", err)
	}

	overview := &DashboardOverview{Recent: []RecentProject{}}
	for _, row := range rows {
		overview.Projects.Total++
		switch row.Status {
		case "ONGOING":
			overview.Projects.Ongoing++
		case "COMPLETE":
			overview.Projects.Completed++
		}

		overview.Tasks.Total += row.TotalTasks
		overview.Tasks.Completed += row.CompletedTasks
		overview.Tasks.InProgress += row.InProgressTasks
		overview.Tasks.Todo += row.TodoTasks

		overview.Financials.TotalBudget += row.Budget
		overview.Financials.TotalInvoiced += row.TotalInvoiced
		overview.Financials.TotalPaid += row.TotalPaid
	}

	if overview.Tasks.Total > 0 {
		overview.Tasks.CompletionRate = float64(overview.Tasks.Completed) / float64(overview.Tasks.Total) * 100
	}
	overview.Financials.Outstanding = overview.Financials.TotalInvoiced - overview.Financials.TotalPaid
	if overview.Financials.TotalInvoiced > 0 {
		overview.Financials.CollectionRate = overview.Financials.TotalPaid / overview.Financials.TotalInvoiced * 100
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	for i, row := range rows {
		if i == 5 {
			break
		}
		overview.Recent = append(overview.Recent, RecentProject{
			ID:        row.ID,
			Name:      row.Name,
			Status:    row.Status,
			CreatedAt: row.CreatedAt,
		})
	}

	return overview, nil
}
