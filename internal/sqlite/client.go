package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/crewbase/crewbase-mcp/internal/domain/client"
)

// ClientRepository implements client lookups for SQLite. Clients are user
// rows that projects reference through client_id; every query here is
// scoped to the owner's own projects.
type ClientRepository struct {
	db *DB
}

// NewClientRepository creates a new ClientRepository
func NewClientRepository(db *DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// ListForOwner returns the distinct clients across the owner's projects
func (r *ClientRepository) ListForOwner(ctx context.Context, ownerID string) ([]client.Client, error) {
	query := `
		SELECT DISTINCT u.id, u.name, u.email, COALESCE(u.phone, ''), COALESCE(u.company, ''), u.active
		FROM users u
		JOIN projects p ON p.client_id = u.id
		WHERE p.owner_id = ?
		ORDER BY u.name
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	return scanClients(rows)
}

// ListRecent returns the owner's clients ordered by latest project creation
func (r *ClientRepository) ListRecent(ctx context.Context, ownerID string, limit int) ([]client.Client, error) {
	query := `
		SELECT u.id, u.name, u.email, COALESCE(u.phone, ''), COALESCE(u.company, ''), u.active
		FROM users u
		JOIN projects p ON p.client_id = u.id
		WHERE p.owner_id = ?
		GROUP BY u.id, u.name, u.email, u.phone, u.company, u.active
		ORDER BY MAX(p.created_at) DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent clients: %w", err)
	}
	defer rows.Close()

	return scanClients(rows)
}

// History returns the owner's projects delivered to one client, newest first
func (r *ClientRepository) History(ctx context.Context, ownerID, clientID string) ([]client.ProjectHistory, error) {
	query := `
		SELECT id, name, status, budget, start_date, end_date
		FROM projects
		WHERE owner_id = ? AND client_id = ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load client history: %w", err)
	}
	defer rows.Close()

	var history []client.ProjectHistory
	for rows.Next() {
		var h client.ProjectHistory
		if err := rows.Scan(&h.ID, &h.Name, &h.Status, &h.Budget, &h.StartDate, &h.EndDate); err != nil {
			return nil, fmt.Errorf("failed to scan project history: %w", err)
		}
		history = append(history, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}

	return history, nil
}

func scanClients(rows *sql.Rows) ([]client.Client, error) {
	var clients []client.Client
	for rows.Next() {
		var c client.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Active); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clients: %w", err)
	}
	return clients, nil
}
