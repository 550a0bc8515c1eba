// Package report renders computed metrics into human-readable text. It is a
// pure consumer of the analytics engine's output: no storage access, no
// policy logic.
package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/crewbase/crewbase-mcp/internal/domain/analytics"
	"github.com/crewbase/crewbase-mcp/internal/domain/project"
)

// Delivery statuses shown in summaries.
const (
	StatusOnTrack = "ON_TRACK"
	StatusDelayed = "DELAYED"
)

// Summary is a rendered project summary.
type Summary struct {
	ProjectID            string `json:"project_id"`
	Summary              string `json:"summary"`
	Status               string `json:"status"`
	CompletionPercentage int    `json:"completion_percentage"`
}

// ProjectSummary renders the sectioned summary text for a project snapshot.
func ProjectSummary(agg *project.Aggregate, m analytics.Metrics, now time.Time) Summary {
	progress := m.TaskVelocity * 100
	budgetUsed := m.BudgetUsedRatio * 100

	status := StatusOnTrack
	if agg.EndDate != nil && agg.EndDate.Before(now) && progress < 100 {
		status = StatusDelayed
	}

	targetEnd := "TBD"
	if agg.EndDate != nil {
		targetEnd = agg.EndDate.Format("2006-01-02")
	}

	var sections []string
	sections = append(sections, fmt.Sprintf("Project %q [Status: %s]", agg.Name, status))

	sections = append(sections, fmt.Sprintf(`1. Timeline & Progress
   - Completion: %d%% (%d/%d tasks)
   - Start Date: %s
   - Target End: %s`,
		roundPct(progress), m.CompletedTasks, m.TotalTasks,
		agg.StartDate.Format("2006-01-02"), targetEnd))

	sections = append(sections, fmt.Sprintf(`2. Financial Overview
   - Budget: %.2f
   - Paid to Date: %.2f (%d%% utilized)
   - Outstanding Balance: %.2f
   - Invoice Status: %d total invoices issued`,
		agg.Budget, m.TotalPaid, roundPct(budgetUsed), m.Outstanding, len(agg.Invoices)))

	team := make([]string, 0, len(agg.Members))
	for _, member := range agg.Members {
		team = append(team, fmt.Sprintf("%s (%s)", member.Name, member.Role))
	}
	teamLine := strings.Join(team, ", ")
	if teamLine == "" {
		teamLine = "No members assigned"
	}
	sections = append(sections, fmt.Sprintf(`3. Team
   - Members: %s`, teamLine))

	sections = append(sections, "4. Execution Details\n"+moduleLines(agg.Modules))

	sections = append(sections, "5. Recent Discussions\n"+commentLines(agg.Comments))

	description := agg.Description
	if description == "" {
		description = "No description provided."
	}
	sections = append(sections, "6. Project Description\n"+description)

	return Summary{
		ProjectID:            agg.ID,
		Summary:              strings.Join(sections, "\n\n"),
		Status:               status,
		CompletionPercentage: roundPct(progress),
	}
}

func moduleLines(modules []project.Module) string {
	if len(modules) == 0 {
		return "   - No modules defined"
	}
	lines := make([]string, 0, len(modules))
	for _, mod := range modules {
		done := 0
		for _, task := range mod.Tasks {
			if task.Status == project.TaskCompleted {
				done++
			}
		}
		pct := 0
		if len(mod.Tasks) > 0 {
			pct = roundPct(float64(done) / float64(len(mod.Tasks)) * 100)
		}
		lines = append(lines, fmt.Sprintf("   - %s: %d%% done (%d/%d tasks)", mod.Name, pct, done, len(mod.Tasks)))
	}
	return strings.Join(lines, "\n")
}

func commentLines(comments []project.Comment) string {
	if len(comments) == 0 {
		return "   - No recent activity"
	}
	lines := make([]string, 0, len(comments))
	for _, c := range comments {
		lines = append(lines, fmt.Sprintf("   - %q by %s on %s", c.Content, c.AuthorName, c.CreatedAt.Format("2006-01-02")))
	}
	return strings.Join(lines, "\n")
}

func roundPct(v float64) int {
	return int(math.Round(v))
}
