package analytics

import (
	"time"

	"github.com/crewbase/crewbase-mcp/internal/domain/project"
)

// Engine derives metrics and risk scores from project aggregates. It holds
// no state and is safe for unbounded concurrent use. Inputs are assumed to
// be policy-approved already; the engine does not re-check authorization.
type Engine struct{}

// NewEngine creates an analytics engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Measure computes the derived metrics for a project snapshot at the given
// wall-clock time.
func (e *Engine) Measure(agg *project.Aggregate, now time.Time) Metrics {
	m := Metrics{}

	for _, task := range agg.Tasks() {
		m.TotalTasks++
		switch task.Status {
		case project.TaskCompleted:
			m.CompletedTasks++
		case project.TaskInProgress:
			m.InProgressTasks++
		case project.TaskTodo:
			m.TodoTasks++
		}
	}
	if m.TotalTasks > 0 {
		m.TaskVelocity = float64(m.CompletedTasks) / float64(m.TotalTasks)
	}

	if agg.EndDate != nil && agg.EndDate.After(agg.StartDate) {
		total := agg.EndDate.Sub(agg.StartDate).Seconds()
		elapsed := now.Sub(agg.StartDate).Seconds()
		m.TimeVelocity = clamp(elapsed/total, 0, 1)
	}

	for _, p := range agg.Payments {
		m.TotalPaid += p.Amount
	}
	for _, inv := range agg.Invoices {
		m.TotalInvoiced += inv.Amount
	}
	m.Outstanding = max(0, m.TotalInvoiced-m.TotalPaid)
	if agg.Budget > 0 {
		m.BudgetUsedRatio = m.TotalPaid / agg.Budget
	}

	return m
}

// Assess produces the full risk assessment for a project snapshot.
func (e *Engine) Assess(agg *project.Aggregate, now time.Time) RiskAssessment {
	m := e.Measure(agg, now)

	velocityGap := max(0, m.TimeVelocity-m.TaskVelocity)
	probability := clamp(0.10+velocityGap*0.70, 0, 1)

	// Overdue and incomplete is maximum risk. A hard rule, not a blend:
	// it replaces the linear score entirely.
	if agg.EndDate != nil && now.After(*agg.EndDate) && m.TaskVelocity < 1 {
		probability = 1.0
	}

	return RiskAssessment{
		ProjectID:        agg.ID,
		DelayProbability: probability,
		BudgetHealth:     classifyBudget(m.BudgetUsedRatio),
		Recommendations:  recommend(agg, m, velocityGap),
	}
}

func classifyBudget(ratio float64) BudgetHealth {
	switch {
	case ratio > 1.1:
		return BudgetOver
	case ratio > 0.9:
		return BudgetUnder
	default:
		return BudgetHealthy
	}
}

// recommend applies the advisory rules in order; every matching rule fires.
// The result is never empty.
func recommend(agg *project.Aggregate, m Metrics, velocityGap float64) []string {
	var recs []string
	if velocityGap > 0.3 {
		recs = append(recs, "The project timeline is progressing faster than task completion. Consider adding resources.")
	}
	if m.Outstanding > 0.3*agg.Budget {
		recs = append(recs, "High outstanding balance detected. Follow up on unpaid invoices to maintain cash flow.")
	}
	if m.TotalTasks == 0 {
		recs = append(recs, "No tasks defined for this project. Defined modules but no actionable tasks.")
	}
	if m.CompletedTasks == 0 && m.TimeVelocity > 0.2 {
		recs = append(recs, "Stagnation Alert: 20% of timeline elapsed with 0 tasks completed.")
	}
	if len(recs) == 0 {
		recs = append(recs, "Project is performing within expected parameters.")
	}
	return recs
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
