package mocks

import (
	"context"
	"time"

	"github.com/crewbase/crewbase-mcp/internal/domain/analytics"
	"github.com/crewbase/crewbase-mcp/internal/domain/authz"
	"github.com/crewbase/crewbase-mcp/internal/domain/client"
	"github.com/crewbase/crewbase-mcp/internal/domain/finance"
	"github.com/crewbase/crewbase-mcp/internal/domain/identity"
	"github.com/crewbase/crewbase-mcp/internal/domain/project"
	"github.com/stretchr/testify/mock"
)

// ProjectRepository is a testify mock satisfying project.Repository,
// authz.MembershipSource, and analytics.StatsRepository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, agg *project.Aggregate) error {
	args := m.Called(ctx, agg)
	return args.Error(0)
}

func (m *ProjectRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProjectRepository) GetMembership(ctx context.Context, projectID string) (authz.Projection, error) {
	args := m.Called(ctx, projectID)
	if proj, ok := args.Get(0).(authz.Projection); ok {
		return proj, args.Error(1)
	}
	return authz.Projection{}, args.Error(1)
}

func (m *ProjectRepository) GetAggregate(ctx context.Context, id string) (*project.Aggregate, error) {
	args := m.Called(ctx, id)
	if agg, ok := args.Get(0).(*project.Aggregate); ok {
		return agg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) GetTaskProject(ctx context.Context, taskID string) (string, error) {
	args := m.Called(ctx, taskID)
	return args.String(0), args.Error(1)
}

func (m *ProjectRepository) UpdateTaskStatus(ctx context.Context, taskID string, status project.TaskStatus) (*project.Task, error) {
	args := m.Called(ctx, taskID, status)
	if task, ok := args.Get(0).(*project.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) AddComment(ctx context.Context, projectID string, comment *project.Comment) error {
	args := m.Called(ctx, projectID, comment)
	return args.Error(0)
}

func (m *ProjectRepository) StatsByOwner(ctx context.Context, ownerID string) ([]analytics.ProjectStats, error) {
	args := m.Called(ctx, ownerID)
	if stats, ok := args.Get(0).([]analytics.ProjectStats); ok {
		return stats, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) StatsByPeriod(ctx context.Context, ownerID string, start, end time.Time) ([]project.PeriodStat, error) {
	args := m.Called(ctx, ownerID, start, end)
	if stats, ok := args.Get(0).([]project.PeriodStat); ok {
		return stats, args.Error(1)
	}
	return nil, args.Error(1)
}

// UserRepository is a testify mock satisfying project.UserSource.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Get(ctx context.Context, id string) (*identity.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*identity.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) GetName(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

// InvoiceRepository is a testify mock satisfying finance.Repository.
type InvoiceRepository struct {
	mock.Mock
}

func (m *InvoiceRepository) GetDetail(ctx context.Context, invoiceID string) (*finance.InvoiceDetail, error) {
	args := m.Called(ctx, invoiceID)
	if detail, ok := args.Get(0).(*finance.InvoiceDetail); ok {
		return detail, args.Error(1)
	}
	return nil, args.Error(1)
}

// ClientRepository is a testify mock satisfying client.Repository.
type ClientRepository struct {
	mock.Mock
}

func (m *ClientRepository) ListForOwner(ctx context.Context, ownerID string) ([]client.Client, error) {
	args := m.Called(ctx, ownerID)
	if clients, ok := args.Get(0).([]client.Client); ok {
		return clients, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClientRepository) ListRecent(ctx context.Context, ownerID string, limit int) ([]client.Client, error) {
	args := m.Called(ctx, ownerID, limit)
	if clients, ok := args.Get(0).([]client.Client); ok {
		return clients, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClientRepository) History(ctx context.Context, ownerID, clientID string) ([]client.ProjectHistory, error) {
	args := m.Called(ctx, ownerID, clientID)
	if history, ok := args.Get(0).([]client.ProjectHistory); ok {
		return history, args.Error(1)
	}
	return nil, args.Error(1)
}
