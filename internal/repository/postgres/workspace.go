package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/focusflowhq/backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WorkspaceRepository handles workspace data access
type WorkspaceRepository struct {
	db *DB
}

// NewWorkspaceRepository creates a new workspace repository
func NewWorkspaceRepository(db *DB) *WorkspaceRepository {
	return &WorkspaceRepository{db: db}
}

// Create creates a new workspace
func (r *WorkspaceRepository) Create(ctx context.Context, workspace *domain.Workspace) error {
	query := `
		INSERT INTO workspaces (id, user_id, name, description, group_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		workspace.ID,
		workspace.UserID,
		workspace.Name,
		workspace.Description,
		workspace.GroupName,
		workspace.CreatedAt,
		workspace.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create workspace: %w", err)
	}

	return nil
}

// GetByID retrieves a workspace by ID. Access is decided upstream by the
// permission chain, so the lookup is not owner-scoped.
func (r *WorkspaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	query := `
		SELECT id, user_id, name, description, group_name, created_at, updated_at
		FROM workspaces
		WHERE id = $1
	`

	var w domain.Workspace
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&w.ID, &w.UserID, &w.Name, &w.Description, &w.GroupName, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	return &w, nil
}

// ListOverviewByUser retrieves the user's workspaces with goal/task counts and
// the progress inputs for the given day window
func (r *WorkspaceRepository) ListOverviewByUser(ctx context.Context, userID uuid.UUID, dayStart, dayEnd time.Time) ([]domain.WorkspaceOverviewRow, error) {
	query := `
		SELECT w.id, w.user_id, w.name, w.description, w.group_name, w.created_at, w.updated_at,
		       COUNT(DISTINCT g.id)::int AS goal_count,
		       COUNT(t.id)::int AS task_count,
		       COALESCE(SUM(t.time_budget), 0)::int AS budget_minutes,
		       COALESCE(SUM(t.time_budget) FILTER (WHERE t.status = 'done'), 0)::int AS done_budget_minutes,
		       COALESCE(SUM(d.minutes) FILTER (WHERE t.status <> 'done'), 0)::float8 AS tracked_today_minutes
		FROM workspaces w
		LEFT JOIN goals g ON g.workspace_id = w.id AND g.user_id = $1
		LEFT JOIN tasks t ON t.goal_id = g.id AND t.user_id = $1
		LEFT JOIN (
			SELECT task_id, SUM(duration)::float8 / 60 AS minutes
			FROM task_tracking_records
			WHERE user_id = $1 AND duration IS NOT NULL
			  AND start_time >= $2 AND start_time < $3
			GROUP BY task_id
		) d ON d.task_id = t.id
		WHERE w.user_id = $1
		GROUP BY w.id, w.user_id, w.name, w.description, w.group_name, w.created_at, w.updated_at
		ORDER BY w.created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, userID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	defer rows.Close()

	var result []domain.WorkspaceOverviewRow
	for rows.Next() {
		var row domain.WorkspaceOverviewRow
		if err := rows.Scan(
			&row.ID, &row.UserID, &row.Name, &row.Description, &row.GroupName,
			&row.CreatedAt, &row.UpdatedAt,
			&row.GoalCount, &row.TaskCount,
			&row.BudgetMinutes, &row.DoneBudgetMinutes, &row.TrackedTodayMinutes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan workspace: %w", err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

// Update updates a workspace
func (r *WorkspaceRepository) Update(ctx context.Context, id uuid.UUID, update *domain.WorkspaceUpdate) (*domain.Workspace, error) {
	query := `
		UPDATE workspaces
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description),
		    group_name = COALESCE($4, group_name),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, user_id, name, description, group_name, created_at, updated_at
	`

	var w domain.Workspace
	err := r.db.Pool.QueryRow(ctx, query, id, update.Name, update.Description, update.GroupName).Scan(
		&w.ID, &w.UserID, &w.Name, &w.Description, &w.GroupName, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update workspace: %w", err)
	}

	return &w, nil
}

// Delete deletes a workspace. Goals, tasks, tracking records, shares and
// permissions cascade at the schema level.
func (r *WorkspaceRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM workspaces WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete workspace: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListGroupNames returns the distinct non-null group labels of the user's workspaces
func (r *WorkspaceRepository) ListGroupNames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	query := `
		SELECT DISTINCT group_name
		FROM workspaces
		WHERE user_id = $1 AND group_name IS NOT NULL
		ORDER BY group_name
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan group name: %w", err)
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// IsOwner checks whether the user owns the workspace
func (r *WorkspaceRepository) IsOwner(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM workspaces WHERE id = $1 AND user_id = $2)`, id, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check workspace owner: %w", err)
	}
	return exists, nil
}
