package finance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/crewbase/crewbase-mcp/internal/domain/authz"
	"github.com/crewbase/crewbase-mcp/internal/domain/identity"
	"github.com/crewbase/crewbase-mcp/internal/repository"
)

// ErrInvoiceNotFound indicates the invoice doesn't exist.
var ErrInvoiceNotFound = errors.New("invoice not found")

// Repository provides invoice persistence.
type Repository interface {
	GetDetail(ctx context.Context, invoiceID string) (*InvoiceDetail, error)
}

// Service exposes policy-gated financial reads.
type Service struct {
	repo   Repository
	guard  *authz.Guard
	logger *slog.Logger
}

// NewService creates a finance service.
func NewService(repo Repository, guard *authz.Guard, logger *slog.Logger) *Service {
	return &Service{repo: repo, guard: guard, logger: logger}
}

// InvoiceDetail fetches one invoice with project context. The detail row
// embeds the project's ownership projection, so the financial-visibility
// policy is evaluated without a second storage round trip.
func (s *Service) InvoiceDetail(ctx context.Context, caller identity.Caller, invoiceID string) (*InvoiceDetail, error) {
	if !authz.ValidID(caller.ID) {
		return nil, fmt.Errorf("%w: caller id %q", authz.ErrInvalidID, caller.ID)
	}
	if !authz.ValidID(invoiceID) {
		return nil, fmt.Errorf("%w: invoice id %q", authz.ErrInvalidID, invoiceID)
	}

	detail, err := s.repo.GetDetail(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	if _, err := s.guard.AuthorizeProjection(caller, detail.Ownership, authz.OpViewFinancials); err != nil {
		return nil, err
	}
	return detail, nil
}
