package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/crewbase/crewbase-mcp/internal/domain/finance"
)

func TestExplainInvoice(t *testing.T) {
	d := &finance.InvoiceDetail{
		ID:            "i1",
		Number:        "INV-001",
		Amount:        2500,
		Status:        "SENT",
		DueDate:       time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		ProjectName:   "Website Redesign",
		ProjectStatus: "ONGOING",
		ProjectBudget: 10000,
		TotalInvoiced: 6000,
		TotalPaid:     3500,
	}

	e := ExplainInvoice(d)

	require.Equal(t, "i1", e.InvoiceID)
	require.Contains(t, e.SimpleBreakdown, `Invoice INV-001 for Project "Website Redesign"`)
	require.Contains(t, e.SimpleBreakdown, "Amount: 2500.00")
	require.Contains(t, e.SimpleBreakdown, "Status: SENT")
	require.Contains(t, e.SimpleBreakdown, "Due Date: 2026-09-15")
	require.Contains(t, e.SimpleBreakdown, "25% of the total project budget (10000.00)")
	require.Contains(t, e.SimpleBreakdown, "Project Status is currently ONGOING")
	require.Contains(t, e.SimpleBreakdown, "Total Invoiced so far: 6000.00")
	require.Contains(t, e.SimpleBreakdown, "Total Paid so far: 3500.00")
	require.Contains(t, e.SimpleBreakdown, "Outstanding Balance: 2500.00")
	require.Contains(t, e.SimpleBreakdown, "ensure payment by the due date")
}

func TestExplainInvoiceZeroBudget(t *testing.T) {
	d := &finance.InvoiceDetail{
		ID:      "i2",
		Number:  "INV-002",
		Amount:  500,
		DueDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	}

	e := ExplainInvoice(d)

	require.Contains(t, e.SimpleBreakdown, "0% of the total project budget (0.00)")
}
