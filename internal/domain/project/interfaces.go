package project

import (
	"context"
	"time"
)

// Repository provides persistence for projects. Calls are independent
// blocking I/O with no retry policy; transient failures surface directly.
type Repository interface {
	Create(ctx context.Context, agg *Aggregate) error
	Delete(ctx context.Context, id string) error
	GetAggregate(ctx context.Context, id string) (*Aggregate, error)
	GetTaskProject(ctx context.Context, taskID string) (string, error)
	UpdateTaskStatus(ctx context.Context, taskID string, status TaskStatus) (*Task, error)
	AddComment(ctx context.Context, projectID string, comment *Comment) error
	StatsByPeriod(ctx context.Context, ownerID string, start, end time.Time) ([]PeriodStat, error)
}

// UserSource looks up stored users for display fields.
type UserSource interface {
	GetName(ctx context.Context, userID string) (string, error)
}
