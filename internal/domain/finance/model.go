package finance

import (
	"time"

	"github.com/crewbase/crewbase-mcp/internal/domain/authz"
)

// InvoiceDetail is an invoice joined with the financial context of its
// project, including the ownership projection the policy check needs.
type InvoiceDetail struct {
	ID            string    `json:"id"`
	Number        string    `json:"number"`
	Amount        float64   `json:"amount"`
	Status        string    `json:"status"`
	DueDate       time.Time `json:"due_date"`
	ProjectID     string    `json:"project_id"`
	ProjectName   string    `json:"project_name"`
	ProjectStatus string    `json:"project_status"`
	ProjectBudget float64   `json:"project_budget"`
	TotalInvoiced float64   `json:"total_invoiced"`
	TotalPaid     float64   `json:"total_paid"`

	Ownership authz.Projection `json:"-"`
}

// Outstanding is the unpaid balance across the invoice's project.
func (d *InvoiceDetail) Outstanding() float64 {
	if d.TotalInvoiced <= d.TotalPaid {
		return 0
	}
	return d.TotalInvoiced - d.TotalPaid
}
