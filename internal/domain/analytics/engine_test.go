package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/crewbase/crewbase-mcp/internal/domain/project"
)

func ptr(t time.Time) *time.Time { return &t }

func aggregateWithTasks(completed, total int) *project.Aggregate {
	tasks := make([]project.Task, 0, total)
	for i := 0; i < total; i++ {
		status := project.TaskTodo
		if i < completed {
			status = project.TaskCompleted
		}
		tasks = append(tasks, project.Task{ID: "t", Title: "task", Status: status})
	}
	return &project.Aggregate{
		ID:        "p1",
		Name:      "Test",
		Status:    project.StatusOngoing,
		StartDate: time.Now().AddDate(0, -2, 0),
		Modules:   []project.Module{{ID: "m1", Name: "Work", Tasks: tasks}},
	}
}

func TestMeasureTaskVelocity(t *testing.T) {
	engine := NewEngine()
	now := time.Now()

	m := engine.Measure(aggregateWithTasks(2, 10), now)
	require.Equal(t, 10, m.TotalTasks)
	require.Equal(t, 2, m.CompletedTasks)
	require.InDelta(t, 0.2, m.TaskVelocity, 1e-9)

	// No tasks means velocity zero, not NaN.
	m = engine.Measure(aggregateWithTasks(0, 0), now)
	require.Equal(t, 0.0, m.TaskVelocity)
}

func TestMeasureTimeVelocityClamped(t *testing.T) {
	engine := NewEngine()
	now := time.Now()

	halfway := aggregateWithTasks(0, 1)
	halfway.StartDate = now.AddDate(0, 0, -10)
	halfway.EndDate = ptr(now.AddDate(0, 0, 10))
	m := engine.Measure(halfway, now)
	require.InDelta(t, 0.5, m.TimeVelocity, 0.01)

	overdue := aggregateWithTasks(0, 1)
	overdue.StartDate = now.AddDate(0, 0, -40)
	overdue.EndDate = ptr(now.AddDate(0, 0, -10))
	m = engine.Measure(overdue, now)
	require.Equal(t, 1.0, m.TimeVelocity)

	notStarted := aggregateWithTasks(0, 1)
	notStarted.StartDate = now.AddDate(0, 0, 10)
	notStarted.EndDate = ptr(now.AddDate(0, 0, 40))
	m = engine.Measure(notStarted, now)
	require.Equal(t, 0.0, m.TimeVelocity)

	// Absent end date means no deadline pressure.
	open := aggregateWithTasks(0, 1)
	open.EndDate = nil
	m = engine.Measure(open, now)
	require.Equal(t, 0.0, m.TimeVelocity)
}

func TestMeasureFinancials(t *testing.T) {
	engine := NewEngine()
	agg := aggregateWithTasks(0, 0)
	agg.Budget = 10000
	agg.Invoices = []project.Invoice{{ID: "i1", Amount: 4000}, {ID: "i2", Amount: 2000}}
	agg.Payments = []project.Payment{{ID: "pay1", Amount: 2500}}

	m := engine.Measure(agg, time.Now())
	require.Equal(t, 6000.0, m.TotalInvoiced)
	require.Equal(t, 2500.0, m.TotalPaid)
	require.Equal(t, 3500.0, m.Outstanding)
	require.InDelta(t, 0.25, m.BudgetUsedRatio, 1e-9)
}

// Overpayment never produces a negative outstanding balance.
func TestMeasureOutstandingFloorsAtZero(t *testing.T) {
	engine := NewEngine()
	agg := aggregateWithTasks(0, 0)
	agg.Invoices = []project.Invoice{{ID: "i1", Amount: 1000}}
	agg.Payments = []project.Payment{{ID: "pay1", Amount: 1500}}

	m := engine.Measure(agg, time.Now())
	require.Equal(t, 0.0, m.Outstanding)
}

func TestAssessOverdueProjectIsMaximumRisk(t *testing.T) {
	engine := NewEngine()
	now := time.Now()

	agg := aggregateWithTasks(2, 10)
	agg.StartDate = now.AddDate(0, -3, 0)
	agg.EndDate = ptr(now.AddDate(0, 0, -30))

	risk := engine.Assess(agg, now)
	require.Equal(t, 1.0, risk.DelayProbability)
	require.NotEmpty(t, risk.Recommendations)
}

// A finished project past its end date carries no overdue penalty.
func TestAssessCompletedOverdueProject(t *testing.T) {
	engine := NewEngine()
	now := time.Now()

	agg := aggregateWithTasks(5, 5)
	agg.StartDate = now.AddDate(0, -3, 0)
	agg.EndDate = ptr(now.AddDate(0, 0, -30))

	risk := engine.Assess(agg, now)
	require.Less(t, risk.DelayProbability, 1.0)
}

func TestAssessProbabilityBounds(t *testing.T) {
	engine := NewEngine()
	now := time.Now()

	// Tasks ahead of timeline: the gap is zero and only the base remains.
	ahead := aggregateWithTasks(5, 5)
	ahead.StartDate = now.AddDate(0, 0, -5)
	ahead.EndDate = ptr(now.AddDate(0, 0, 25))
	risk := engine.Assess(ahead, now)
	require.InDelta(t, 0.10, risk.DelayProbability, 1e-9)

	// Maximum gap: timeline done, nothing completed.
	behind := aggregateWithTasks(0, 5)
	behind.StartDate = now.AddDate(0, 0, -30)
	behind.EndDate = ptr(now.Add(time.Hour))
	risk = engine.Assess(behind, now)
	require.GreaterOrEqual(t, risk.DelayProbability, 0.0)
	require.LessOrEqual(t, risk.DelayProbability, 1.0)
	require.Greater(t, risk.DelayProbability, 0.7)
}

func TestClassifyBudget(t *testing.T) {
	tests := []struct {
		ratio float64
		want  BudgetHealth
	}{
		{0.0, BudgetHealthy},
		{0.5, BudgetHealthy},
		{0.9, BudgetHealthy},
		{0.91, BudgetUnder},
		{0.95, BudgetUnder},
		{1.1, BudgetUnder},
		{1.11, BudgetOver},
		{2.0, BudgetOver},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, classifyBudget(tt.ratio), "ratio %v", tt.ratio)
	}
}

// Budget 10000, paid 9500: near-full utilization classifies as
// UNDER_BUDGET. The label is inherited product vocabulary.
func TestAssessBudgetNearLimit(t *testing.T) {
	engine := NewEngine()
	agg := aggregateWithTasks(1, 2)
	agg.Budget = 10000
	agg.Payments = []project.Payment{{ID: "pay1", Amount: 9500}}

	risk := engine.Assess(agg, time.Now())
	require.Equal(t, BudgetUnder, risk.BudgetHealth)
}

func TestRecommendations(t *testing.T) {
	engine := NewEngine()
	now := time.Now()

	// Healthy project gets the default recommendation, never an empty list.
	healthy := aggregateWithTasks(3, 3)
	healthy.Budget = 10000
	risk := engine.Assess(healthy, now)
	require.Equal(t, []string{"Project is performing within expected parameters."}, risk.Recommendations)

	// Stagnation: timeline moving, nothing completed.
	stagnant := aggregateWithTasks(0, 4)
	stagnant.StartDate = now.AddDate(0, 0, -15)
	stagnant.EndDate = ptr(now.AddDate(0, 0, 15))
	risk = engine.Assess(stagnant, now)
	require.Contains(t, risk.Recommendations, "Stagnation Alert: 20% of timeline elapsed with 0 tasks completed.")

	// Unpaid invoices above 30% of budget.
	unpaid := aggregateWithTasks(1, 1)
	unpaid.Budget = 10000
	unpaid.Invoices = []project.Invoice{{ID: "i1", Amount: 5000}}
	risk = engine.Assess(unpaid, now)
	require.Contains(t, risk.Recommendations, "High outstanding balance detected. Follow up on unpaid invoices to maintain cash flow.")

	// No tasks at all.
	empty := aggregateWithTasks(0, 0)
	risk = engine.Assess(empty, now)
	require.Contains(t, risk.Recommendations, "No tasks defined for this project. Defined modules but no actionable tasks.")
}
