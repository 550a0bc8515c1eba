package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/crewbase/crewbase-mcp/internal/domain/analytics"
	"github.com/crewbase/crewbase-mcp/internal/domain/authz"
	"github.com/crewbase/crewbase-mcp/internal/domain/project"
	"github.com/crewbase/crewbase-mcp/internal/repository"
)

// ProjectRepository implements project persistence for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a new project row
func (r *ProjectRepository) Create(ctx context.Context, agg *project.Aggregate) error {
	query := `
		INSERT INTO projects (id, name, description, status, budget, start_date, end_date, owner_id, client_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var endDate any
	if agg.EndDate != nil {
		endDate = *agg.EndDate
	}

	_, err := r.db.ExecContext(ctx, query,
		agg.ID,
		agg.Name,
		agg.Description,
		string(agg.Status),
		agg.Budget,
		agg.StartDate,
		endDate,
		agg.OwnerID,
		agg.ClientID,
		agg.CreatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// Delete removes a project and, via cascade, its nested entities
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// GetMembership loads the ownership/client/member projection of a project
func (r *ProjectRepository) GetMembership(ctx context.Context, projectID string) (authz.Projection, error) {
	var proj authz.Projection
	err := r.db.QueryRowContext(ctx,
		`SELECT owner_id, client_id FROM projects WHERE id = ?`,
		projectID).Scan(&proj.OwnerID, &proj.ClientID)

	if err == sql.ErrNoRows {
		return authz.Projection{}, repository.ErrNotFound
	}
	if err != nil {
		return authz.Projection{}, fmt.Errorf("failed to get membership projection: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id FROM project_members WHERE project_id = ?`, projectID)
	if err != nil {
		return authz.Projection{}, fmt.Errorf("failed to list member ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return authz.Projection{}, fmt.Errorf("failed to scan member id: %w", err)
		}
		proj.MemberIDs = append(proj.MemberIDs, id)
	}
	if err := rows.Err(); err != nil {
		return authz.Projection{}, fmt.Errorf("error iterating member rows: %w", err)
	}

	return proj, nil
}

// GetAggregate assembles the full project snapshot
func (r *ProjectRepository) GetAggregate(ctx context.Context, id string) (*project.Aggregate, error) {
	var (
		agg     project.Aggregate
		desc    sql.NullString
		endDate sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, status, budget, start_date, end_date, owner_id, client_id, created_at
		FROM projects
		WHERE id = ?
	`, id).Scan(
		&agg.ID,
		&agg.Name,
		&desc,
		&agg.Status,
		&agg.Budget,
		&agg.StartDate,
		&endDate,
		&agg.OwnerID,
		&agg.ClientID,
		&agg.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	agg.Description = desc.String
	if endDate.Valid {
		end := endDate.Time
		agg.EndDate = &end
	}

	if agg.Members, err = r.loadMembers(ctx, id); err != nil {
		return nil, err
	}
	if agg.Modules, err = r.loadModules(ctx, id); err != nil {
		return nil, err
	}
	if agg.Invoices, err = r.loadInvoices(ctx, id); err != nil {
		return nil, err
	}
	if agg.Payments, err = r.loadPayments(ctx, id); err != nil {
		return nil, err
	}
	if agg.Comments, err = r.loadComments(ctx, id); err != nil {
		return nil, err
	}

	return &agg, nil
}

func (r *ProjectRepository) loadMembers(ctx context.Context, projectID string) ([]project.Member, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT u.id, u.name, pm.member_role
		FROM project_members pm
		JOIN users u ON u.id = pm.user_id
		WHERE pm.project_id = ?
		ORDER BY u.name
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []project.Member
	for rows.Next() {
		var m project.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Role); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *ProjectRepository) loadModules(ctx context.Context, projectID string) ([]project.Module, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT m.id, m.name, t.id, t.title, t.status
		FROM modules m
		LEFT JOIN tasks t ON t.module_id = m.id
		WHERE m.project_id = ?
		ORDER BY m.position, m.id, t.created_at
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list modules: %w", err)
	}
	defer rows.Close()

	var modules []project.Module
	index := map[string]int{}
	for rows.Next() {
		var (
			moduleID, moduleName       string
			taskID, taskTitle, taskStd sql.NullString
		)
		if err := rows.Scan(&moduleID, &moduleName, &taskID, &taskTitle, &taskStd); err != nil {
			return nil, fmt.Errorf("failed to scan module row: %w", err)
		}

		pos, ok := index[moduleID]
		if !ok {
			pos = len(modules)
			index[moduleID] = pos
			modules = append(modules, project.Module{ID: moduleID, Name: moduleName})
		}
		if taskID.Valid {
			modules[pos].Tasks = append(modules[pos].Tasks, project.Task{
				ID:     taskID.String,
				Title:  taskTitle.String,
				Status: project.TaskStatus(taskStd.String),
			})
		}
	}
	return modules, rows.Err()
}

func (r *ProjectRepository) loadInvoices(ctx context.Context, projectID string) ([]project.Invoice, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, amount, status, due_date
		FROM invoices
		WHERE project_id = ?
		ORDER BY due_date
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []project.Invoice
	for rows.Next() {
		var inv project.Invoice
		if err := rows.Scan(&inv.ID, &inv.Amount, &inv.Status, &inv.DueDate); err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func (r *ProjectRepository) loadPayments(ctx context.Context, projectID string) ([]project.Payment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, amount, paid_at
		FROM payments
		WHERE project_id = ?
		ORDER BY paid_at
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []project.Payment
	for rows.Next() {
		var p project.Payment
		if err := rows.Scan(&p.ID, &p.Amount, &p.Date); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// loadComments returns the three most recent comments
func (r *ProjectRepository) loadComments(ctx context.Context, projectID string) ([]project.Comment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, content, author_name, created_at
		FROM comments
		WHERE project_id = ?
		ORDER BY created_at DESC
		LIMIT 3
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []project.Comment
	for rows.Next() {
		var c project.Comment
		if err := rows.Scan(&c.ID, &c.Content, &c.AuthorName, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// GetTaskProject resolves the project a task belongs to
func (r *ProjectRepository) GetTaskProject(ctx context.Context, taskID string) (string, error) {
	var projectID string
	err := r.db.QueryRowContext(ctx, `
		SELECT m.project_id
		FROM tasks t
		JOIN modules m ON m.id = t.module_id
		WHERE t.id = ?
	`, taskID).Scan(&projectID)

	if err == sql.ErrNoRows {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to locate task: %w", err)
	}
	return projectID, nil
}

// UpdateTaskStatus transitions a task and returns the updated row
func (r *ProjectRepository) UpdateTaskStatus(ctx context.Context, taskID string, status project.TaskStatus) (*project.Task, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET status = ? WHERE id = ?`, string(status), taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return nil, repository.ErrNotFound
	}

	var task project.Task
	err = r.db.QueryRowContext(ctx,
		`SELECT id, title, status FROM tasks WHERE id = ?`, taskID).
		Scan(&task.ID, &task.Title, &task.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to reload task: %w", err)
	}
	return &task, nil
}

// AddComment appends a comment to a project
func (r *ProjectRepository) AddComment(ctx context.Context, projectID string, comment *project.Comment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO comments (id, project_id, author_name, content, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, comment.ID, projectID, comment.AuthorName, comment.Content, comment.CreatedAt)

	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("failed to add comment: %w", err)
	}
	return nil
}

// StatsByOwner returns pre-aggregated dashboard rows for an owner's projects
func (r *ProjectRepository) StatsByOwner(ctx context.Context, ownerID string) ([]analytics.ProjectStats, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			p.id,
			p.name,
			p.status,
			p.budget,
			p.created_at,
			COUNT(t.id) AS total_tasks,
			COUNT(CASE WHEN t.status = 'COMPLETED' THEN t.id END) AS completed_tasks,
			COUNT(CASE WHEN t.status = 'INPROGRESS' THEN t.id END) AS in_progress_tasks,
			COUNT(CASE WHEN t.status = 'TODO' THEN t.id END) AS todo_tasks,
			(SELECT COALESCE(SUM(i.amount), 0) FROM invoices i WHERE i.project_id = p.id) AS total_invoiced,
			(SELECT COALESCE(SUM(pay.amount), 0) FROM payments pay WHERE pay.project_id = p.id) AS total_paid
		FROM projects p
		LEFT JOIN modules m ON m.project_id = p.id
		LEFT JOIN tasks t ON t.module_id = m.id
		WHERE p.owner_id = ?
		GROUP BY p.id, p.name, p.status, p.budget, p.created_at
		ORDER BY p.created_at DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load owner stats: %w", err)
	}
	defer rows.Close()

	var stats []analytics.ProjectStats
	for rows.Next() {
		var s analytics.ProjectStats
		err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.Status,
			&s.Budget,
			&s.CreatedAt,
			&s.TotalTasks,
			&s.CompletedTasks,
			&s.InProgressTasks,
			&s.TodoTasks,
			&s.TotalInvoiced,
			&s.TotalPaid,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stats row: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// StatsByPeriod returns projects created inside a window
func (r *ProjectRepository) StatsByPeriod(ctx context.Context, ownerID string, start, end time.Time) ([]project.PeriodStat, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, status, budget, created_at
		FROM projects
		WHERE owner_id = ? AND created_at >= ? AND created_at <= ?
		ORDER BY created_at
	`, ownerID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load period stats: %w", err)
	}
	defer rows.Close()

	var stats []project.PeriodStat
	for rows.Next() {
		var s project.PeriodStat
		if err := rows.Scan(&s.ID, &s.Name, &s.Status, &s.Budget, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan period stat: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
