package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/crewbase/crewbase-mcp/internal/domain/authz"
	"github.com/crewbase/crewbase-mcp/internal/domain/identity"
	"github.com/crewbase/crewbase-mcp/internal/repository"
	"github.com/google/uuid"
)

// Service handles policy-gated project operations.
type Service struct {
	repo   Repository
	users  UserSource
	guard  *authz.Guard
	logger *slog.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, users UserSource, guard *authz.Guard, logger *slog.Logger) *Service {
	return &Service{repo: repo, users: users, guard: guard, logger: logger}
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	Name        string
	Description string
	ClientID    string
	Budget      float64
	StartDate   time.Time
	EndDate     *time.Time
}

// Create creates a new project owned by the caller.
func (s *Service) Create(ctx context.Context, caller identity.Caller, req CreateRequest) (*Aggregate, error) {
	if !authz.AllowsByRole(authz.OpCreateProject, caller) {
		return nil, fmt.Errorf("%w: %s", authz.ErrNotAuthorized, authz.Reason(authz.OpCreateProject))
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrInvalidInput)
	}
	if !authz.ValidID(caller.ID) {
		return nil, fmt.Errorf("%w: caller id %q", authz.ErrInvalidID, caller.ID)
	}
	if !authz.ValidID(req.ClientID) {
		return nil, fmt.Errorf("%w: client id %q", authz.ErrInvalidID, req.ClientID)
	}

	start := req.StartDate
	if start.IsZero() {
		start = time.Now()
	}

	agg := &Aggregate{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Status:      StatusOngoing,
		Budget:      req.Budget,
		StartDate:   start,
		EndDate:     req.EndDate,
		OwnerID:     caller.ID,
		ClientID:    req.ClientID,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, agg); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, fmt.Errorf("%w: owner or client does not exist", ErrUserNotFound)
		}
		return nil, fmt.Errorf("creating project: %w", err)
	}
	return agg, nil
}

// Get fetches the full project aggregate after a read-policy check.
func (s *Service) Get(ctx context.Context, caller identity.Caller, projectID string) (*Aggregate, error) {
	if _, err := s.guard.Authorize(ctx, caller, projectID, authz.OpReadProject); err != nil {
		return nil, err
	}

	agg, err := s.repo.GetAggregate(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return agg, nil
}

// Delete removes a project. Ownership is required; ADMIN role alone does
// not grant deletion.
func (s *Service) Delete(ctx context.Context, caller identity.Caller, projectID string) error {
	if _, err := s.guard.Authorize(ctx, caller, projectID, authz.OpDeleteProject); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, projectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

// UpdateTaskStatus moves a task to a new status under the mutate policy of
// its enclosing project.
func (s *Service) UpdateTaskStatus(ctx context.Context, caller identity.Caller, taskID string, status TaskStatus) (*Task, error) {
	if !ValidTaskStatus(status) {
		return nil, fmt.Errorf("%w: unknown task status %q", ErrInvalidInput, status)
	}
	if !authz.ValidID(taskID) {
		return nil, fmt.Errorf("%w: task id %q", authz.ErrInvalidID, taskID)
	}

	projectID, err := s.repo.GetTaskProject(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("locating task: %w", err)
	}

	if _, err := s.guard.Authorize(ctx, caller, projectID, authz.OpMutateProject); err != nil {
		return nil, err
	}

	task, err := s.repo.UpdateTaskStatus(ctx, taskID, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("updating task status: %w", err)
	}
	return task, nil
}

// AddComment appends a comment authored by the caller.
func (s *Service) AddComment(ctx context.Context, caller identity.Caller, projectID, content string) (*Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: comment content is required", ErrInvalidInput)
	}
	if _, err := s.guard.Authorize(ctx, caller, projectID, authz.OpAddComment); err != nil {
		return nil, err
	}

	authorName, err := s.users.GetName(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown caller %q", authz.ErrNotAuthorized, caller.ID)
		}
		return nil, fmt.Errorf("looking up author: %w", err)
	}

	comment := &Comment{
		ID:         uuid.NewString(),
		Content:    content,
		AuthorName: authorName,
		CreatedAt:  time.Now(),
	}
	if err := s.repo.AddComment(ctx, projectID, comment); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("adding comment: %w", err)
	}
	return comment, nil
}

// StatsByPeriod returns creation-window statistics for the caller's owned
// projects.
func (s *Service) StatsByPeriod(ctx context.Context, caller identity.Caller, start, end time.Time) ([]PeriodStat, error) {
	if !authz.ValidID(caller.ID) {
		return nil, fmt.Errorf("%w: caller id %q", authz.ErrInvalidID, caller.ID)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: period end precedes start", ErrInvalidInput)
	}

	stats, err := s.repo.StatsByPeriod(ctx, caller.ID, start, end)
	if err != nil {
		return nil, fmt.Errorf("loading period stats: %w", err)
	}
	return stats, nil
}
