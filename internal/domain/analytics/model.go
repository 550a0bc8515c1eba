package analytics

import "time"

// BudgetHealth classifies spend-to-budget ratio. UNDER_BUDGET names
// near-full budget utilization, not low spend; the naming is preserved
// from the upstream product and must not be "corrected".
type BudgetHealth string

const (
	BudgetHealthy BudgetHealth = "HEALTHY"
	BudgetOver    BudgetHealth = "OVER_BUDGET"
	BudgetUnder   BudgetHealth = "UNDER_BUDGET"
)

// Metrics are the derived per-project measures feeding risk scoring and
// report templating. All ratios are in [0,1] except BudgetUsedRatio, which
// can exceed 1 when spend passes the budget.
type Metrics struct {
	TotalTasks      int     `json:"total_tasks"`
	CompletedTasks  int     `json:"completed_tasks"`
	InProgressTasks int     `json:"in_progress_tasks"`
	TodoTasks       int     `json:"todo_tasks"`
	TaskVelocity    float64 `json:"task_velocity"`
	TimeVelocity    float64 `json:"time_velocity"`
	TotalPaid       float64 `json:"total_paid"`
	TotalInvoiced   float64 `json:"total_invoiced"`
	Outstanding     float64 `json:"outstanding"`
	BudgetUsedRatio float64 `json:"budget_used_ratio"`
}

// RiskAssessment is the engine's output: created fresh per invocation,
// never persisted, and only as current as the aggregate snapshot it was
// derived from.
type RiskAssessment struct {
	ProjectID        string       `json:"project_id"`
	DelayProbability float64      `json:"delay_probability"`
	BudgetHealth     BudgetHealth `json:"budget_health"`
	Recommendations  []string     `json:"recommendations"`
}

// ProjectStats is one dashboard row: a project with pre-aggregated task and
// financial counts.
type ProjectStats struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Status          string    `json:"status"`
	Budget          float64   `json:"budget"`
	CreatedAt       time.Time `json:"created_at"`
	TotalTasks      int       `json:"total_tasks"`
	CompletedTasks  int       `json:"completed_tasks"`
	InProgressTasks int       `json:"in_progress_tasks"`
	TodoTasks       int       `json:"todo_tasks"`
	TotalInvoiced   float64   `json:"total_invoiced"`
	TotalPaid       float64   `json:"total_paid"`
}

// DashboardOverview aggregates the caller's owned projects.
type DashboardOverview struct {
	Projects   ProjectCounts   `json:"projects"`
	Tasks      TaskCounts      `json:"tasks"`
	Financials FinancialTotals `json:"financials"`
	Recent     []RecentProject `json:"recent_projects"`
}

type ProjectCounts struct {
	Total     int `json:"total"`
	Ongoing   int `json:"ongoing"`
	Completed int `json:"completed"`
}

type TaskCounts struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	InProgress     int     `json:"in_progress"`
	Todo           int     `json:"todo"`
	CompletionRate float64 `json:"completion_rate"`
}

type FinancialTotals struct {
	TotalBudget    float64 `json:"total_budget"`
	TotalInvoiced  float64 `json:"total_invoiced"`
	TotalPaid      float64 `json:"total_paid"`
	Outstanding    float64 `json:"outstanding"`
	CollectionRate float64 `json:"collection_rate"`
}

type RecentProject struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
