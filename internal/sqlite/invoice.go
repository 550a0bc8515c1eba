package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/crewbase/crewbase-mcp/internal/domain/finance"
	"github.com/crewbase/crewbase-mcp/internal/repository"
)

// InvoiceRepository implements invoice persistence for SQLite
type InvoiceRepository struct {
	db *DB
}

// NewInvoiceRepository creates a new InvoiceRepository
func NewInvoiceRepository(db *DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// GetDetail loads an invoice with its project's financial context and
// ownership projection in one pass.
func (r *InvoiceRepository) GetDetail(ctx context.Context, invoiceID string) (*finance.InvoiceDetail, error) {
	query := `
		SELECT i.id, i.number, i.amount, i.status, i.due_date,
		       p.id, p.name, p.status, p.budget, p.owner_id, p.client_id,
		       (SELECT COALESCE(SUM(amount), 0) FROM invoices WHERE project_id = p.id),
		       (SELECT COALESCE(SUM(amount), 0) FROM payments WHERE project_id = p.id)
		FROM invoices i
		JOIN projects p ON p.id = i.project_id
		WHERE i.id = ?
	`

	var detail finance.InvoiceDetail
	err := r.db.QueryRowContext(ctx, query, invoiceID).Scan(
		&detail.ID,
		&detail.Number,
		&detail.Amount,
		&detail.Status,
		&detail.DueDate,
		&detail.ProjectID,
		&detail.ProjectName,
		&detail.ProjectStatus,
		&detail.ProjectBudget,
		&detail.Ownership.OwnerID,
		&detail.Ownership.ClientID,
		&detail.TotalInvoiced,
		&detail.TotalPaid,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id FROM project_members WHERE project_id = ?`, detail.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var memberID string
		if err := rows.Scan(&memberID); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		detail.Ownership.MemberIDs = append(detail.Ownership.MemberIDs, memberID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return &detail, nil
}
