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

// GoalRepository handles goal data access
type GoalRepository struct {
	db *DB
}

// NewGoalRepository creates a new goal repository
func NewGoalRepository(db *DB) *GoalRepository {
	return &GoalRepository{db: db}
}

const goalColumns = `id, user_id, workspace_id, name, description, deadline, status, created_at, updated_at`

func scanGoal(row pgx.Row) (*domain.Goal, error) {
	var g domain.Goal
	err := row.Scan(&g.ID, &g.UserID, &g.WorkspaceID, &g.Name, &g.Description,
		&g.Deadline, &g.Status, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

// Create creates a new goal
func (r *GoalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	query := `
		INSERT INTO goals (id, user_id, workspace_id, name, description, deadline, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		goal.ID,
		goal.UserID,
		goal.WorkspaceID,
		goal.Name,
		goal.Description,
		goal.Deadline,
		goal.Status,
		goal.CreatedAt,
		goal.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}

	return nil
}

// GetByID retrieves a goal by ID. Access is decided upstream by the
// permission chain, so the lookup is not owner-scoped.
func (r *GoalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = $1`

	goal, err := scanGoal(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	return goal, nil
}

// ListOverviewByUser retrieves the user's goals with task counts, running-task
// markers and the progress inputs for the given day window. Pass a workspace
// ID to narrow the listing.
func (r *GoalRepository) ListOverviewByUser(ctx context.Context, userID uuid.UUID, workspaceID *uuid.UUID, dayStart, dayEnd time.Time) ([]domain.GoalOverviewRow, error) {
	query := `
		SELECT g.id, g.user_id, g.workspace_id, g.name, g.description, g.deadline, g.status,
		       g.created_at, g.updated_at,
		       COUNT(t.id)::int AS task_count,
		       COALESCE(BOOL_OR(EXISTS(
		           SELECT 1 FROM task_tracking_records r
		           WHERE r.task_id = t.id AND r.user_id = $1 AND r.end_time IS NULL
		       )), FALSE) AS has_running_task,
		       COALESCE(SUM(t.time_budget), 0)::int AS budget_minutes,
		       COALESCE(SUM(t.time_budget) FILTER (WHERE t.status = 'done'), 0)::int AS done_budget_minutes,
		       COALESCE(SUM(d.minutes) FILTER (WHERE t.status <> 'done'), 0)::float8 AS tracked_today_minutes
		FROM goals g
		LEFT JOIN tasks t ON t.goal_id = g.id AND t.user_id = $1
		LEFT JOIN (
			SELECT task_id, SUM(duration)::float8 / 60 AS minutes
			FROM task_tracking_records
			WHERE user_id = $1 AND duration IS NOT NULL
			  AND start_time >= $2 AND start_time < $3
			GROUP BY task_id
		) d ON d.task_id = t.id
		WHERE g.user_id = $1 AND ($4::uuid IS NULL OR g.workspace_id = $4)
		GROUP BY g.id, g.user_id, g.workspace_id, g.name, g.description, g.deadline, g.status,
		         g.created_at, g.updated_at
		ORDER BY g.created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, userID, dayStart, dayEnd, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var result []domain.GoalOverviewRow
	for rows.Next() {
		var row domain.GoalOverviewRow
		if err := rows.Scan(
			&row.ID, &row.UserID, &row.WorkspaceID, &row.Name, &row.Description,
			&row.Deadline, &row.Status, &row.CreatedAt, &row.UpdatedAt,
			&row.TaskCount, &row.HasRunningTask,
			&row.BudgetMinutes, &row.DoneBudgetMinutes, &row.TrackedTodayMinutes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

// Update updates a goal
func (r *GoalRepository) Update(ctx context.Context, id uuid.UUID, update *domain.GoalUpdate) (*domain.Goal, error) {
	query := `
		UPDATE goals
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description),
		    deadline = COALESCE($4, deadline),
		    status = COALESCE($5, status),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + goalColumns

	goal, err := scanGoal(r.db.Pool.QueryRow(ctx, query, id,
		update.Name, update.Description, update.Deadline, update.Status))
	if err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	return goal, nil
}

// Delete deletes a goal; tasks and tracking records cascade
func (r *GoalRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete goal: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
