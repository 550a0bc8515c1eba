package report

import (
	"fmt"
	"strings"

	"github.com/crewbase/crewbase-mcp/internal/domain/finance"
)

// InvoiceExplanation is a rendered invoice breakdown.
type InvoiceExplanation struct {
	InvoiceID       string `json:"invoice_id"`
	SimpleBreakdown string `json:"simple_breakdown"`
}

// ExplainInvoice renders an invoice detail into plain-language sections.
func ExplainInvoice(d *finance.InvoiceDetail) InvoiceExplanation {
	pctOfBudget := 0
	if d.ProjectBudget > 0 {
		pctOfBudget = roundPct(d.Amount / d.ProjectBudget * 100)
	}

	sections := []string{
		fmt.Sprintf("Invoice %s for Project %q", d.Number, d.ProjectName),

		fmt.Sprintf("Breakdown:\n- Amount: %.2f\n- Status: %s\n- Due Date: %s",
			d.Amount, d.Status, d.DueDate.Format("2006-01-02")),

		fmt.Sprintf("Project Context:\n- This invoice represents %d%% of the total project budget (%.2f).\n- Project Status is currently %s.",
			pctOfBudget, d.ProjectBudget, d.ProjectStatus),

		fmt.Sprintf("Financial Lifecycle:\n- Total Invoiced so far: %.2f\n- Total Paid so far: %.2f\n- Outstanding Balance: %.2f",
			d.TotalInvoiced, d.TotalPaid, d.Outstanding()),

		"Summary:\nThis bill is part of the ongoing development cycle. Please ensure payment by the due date to avoid any project interruptions.",
	}

	return InvoiceExplanation{
		InvoiceID:       d.ID,
		SimpleBreakdown: strings.Join(sections, "\n\n"),
	}
}
