package report

import (
	"fmt"
	"strings"

	"github.com/crewbase/crewbase-mcp/internal/domain/analytics"
)

// DashboardText renders a dashboard overview for AI consumption.
func DashboardText(callerID string, o *analytics.DashboardOverview) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Dashboard Overview for User %s:\n\n", callerID)

	fmt.Fprintf(&b, "Projects:\n- Total: %d\n- Ongoing: %d\n- Completed: %d\n\n",
		o.Projects.Total, o.Projects.Ongoing, o.Projects.Completed)

	fmt.Fprintf(&b, "Tasks:\n- Total: %d\n- Completed: %d (%.1f%%)\n- In Progress: %d\n- To Do: %d\n\n",
		o.Tasks.Total, o.Tasks.Completed, o.Tasks.CompletionRate, o.Tasks.InProgress, o.Tasks.Todo)

	fmt.Fprintf(&b, "Financials:\n- Total Budget: $%.2f\n- Total Invoiced: $%.2f\n- Total Paid: $%.2f\n- Outstanding: $%.2f\n- Collection Rate: %.1f%%\n\n",
		o.Financials.TotalBudget, o.Financials.TotalInvoiced, o.Financials.TotalPaid,
		o.Financials.Outstanding, o.Financials.CollectionRate)

	b.WriteString("Recent Projects:")
	if len(o.Recent) == 0 {
		b.WriteString("\n- none")
	}
	for _, p := range o.Recent {
		fmt.Fprintf(&b, "\n- %s (%s)", p.Name, p.Status)
	}

	return b.String()
}
