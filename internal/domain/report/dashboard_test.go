package report

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crewbase/crewbase-mcp/internal/domain/analytics"
)

func TestDashboardText(t *testing.T) {
	o := &analytics.DashboardOverview{
		Projects: analytics.ProjectCounts{Total: 3, Ongoing: 2, Completed: 1},
		Tasks: analytics.TaskCounts{
			Total: 20, Completed: 12, InProgress: 5, Todo: 3, CompletionRate: 60,
		},
		Financials: analytics.FinancialTotals{
			TotalBudget: 30000, TotalInvoiced: 18000, TotalPaid: 12600,
			Outstanding: 5400, CollectionRate: 70,
		},
		Recent: []analytics.RecentProject{
			{ID: "p2", Name: "Beta", Status: "ONGOING"},
			{ID: "p1", Name: "Alpha", Status: "COMPLETE"},
		},
	}

	text := DashboardText("u1", o)

	require.Contains(t, text, "Dashboard Overview for User u1:")
	require.Contains(t, text, "Projects:\n- Total: 3\n- Ongoing: 2\n- Completed: 1")
	require.Contains(t, text, "Completed: 12 (60.0%)")
	require.Contains(t, text, "Total Budget: $30000.00")
	require.Contains(t, text, "Outstanding: $5400.00")
	require.Contains(t, text, "Collection Rate: 70.0%")
	require.Contains(t, text, "Recent Projects:\n- Beta (ONGOING)\n- Alpha (COMPLETE)")
}

func TestDashboardTextNoRecent(t *testing.T) {
	text := DashboardText("u1", &analytics.DashboardOverview{})

	require.Contains(t, text, "Recent Projects:\n- none")
}
