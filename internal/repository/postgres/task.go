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

// TaskRepository handles task data access
type TaskRepository struct {
	db *DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, user_id, goal_id, name, description, time_budget, deadline, status, priority, is_recurring, created_at, updated_at`

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(&t.ID, &t.UserID, &t.GoalID, &t.Name, &t.Description, &t.TimeBudget,
		&t.Deadline, &t.Status, &t.Priority, &t.IsRecurring, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// Create creates a new task
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (id, user_id, goal_id, name, description, time_budget, deadline,
		                   status, priority, is_recurring, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		task.ID,
		task.UserID,
		task.GoalID,
		task.Name,
		task.Description,
		task.TimeBudget,
		task.Deadline,
		task.Status,
		task.Priority,
		task.IsRecurring,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// Get retrieves a task by ID regardless of owner. Callers are expected to have
// authorized access already.
func (r *TaskRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// ListWithTracking retrieves the user's tasks, each joined with the user's
// currently open tracking record if one exists. Done tasks sort last.
func (r *TaskRepository) ListWithTracking(ctx context.Context, userID uuid.UUID, goalID *uuid.UUID) ([]domain.TaskWithTracking, error) {
	query := `
		SELECT t.id, t.user_id, t.goal_id, t.name, t.description, t.time_budget, t.deadline,
		       t.status, t.priority, t.is_recurring, t.created_at, t.updated_at,
		       r.id, r.task_id, r.user_id, r.start_time, r.end_time, r.duration, r.created_at, r.updated_at
		FROM tasks t
		LEFT JOIN task_tracking_records r
		       ON r.task_id = t.id AND r.user_id = $1 AND r.end_time IS NULL
		WHERE t.user_id = $1 AND ($2::uuid IS NULL OR t.goal_id = $2)
		ORDER BY CASE WHEN t.status = 'done' THEN 1 ELSE 0 END, t.name
	`

	rows, err := r.db.Pool.Query(ctx, query, userID, goalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var result []domain.TaskWithTracking
	for rows.Next() {
		var t domain.TaskWithTracking
		var (
			recID        *uuid.UUID
			recTaskID    *uuid.UUID
			recUserID    *uuid.UUID
			recStart     *time.Time
			recEnd       *time.Time
			recDuration  *int64
			recCreatedAt *time.Time
			recUpdatedAt *time.Time
		)
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.GoalID, &t.Name, &t.Description, &t.TimeBudget, &t.Deadline,
			&t.Status, &t.Priority, &t.IsRecurring, &t.CreatedAt, &t.UpdatedAt,
			&recID, &recTaskID, &recUserID, &recStart, &recEnd, &recDuration, &recCreatedAt, &recUpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		if recID != nil {
			t.ActiveTracking = &domain.TrackingRecord{
				ID:        *recID,
				TaskID:    *recTaskID,
				UserID:    *recUserID,
				StartTime: *recStart,
				EndTime:   recEnd,
				Duration:  recDuration,
				CreatedAt: *recCreatedAt,
				UpdatedAt: *recUpdatedAt,
			}
		}
		result = append(result, t)
	}

	return result, rows.Err()
}

// SumBudgetByGoal returns the total time budget in minutes across the goal's
// tasks, scoped to goals the user owns
func (r *TaskRepository) SumBudgetByGoal(ctx context.Context, goalID, userID uuid.UUID) (int, error) {
	query := `
		SELECT COALESCE(SUM(t.time_budget), 0)::int
		FROM tasks t
		INNER JOIN goals g ON g.id = t.goal_id AND g.user_id = $2
		WHERE t.goal_id = $1
	`

	var total int
	if err := r.db.Pool.QueryRow(ctx, query, goalID, userID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum task budgets: %w", err)
	}
	return total, nil
}

// Update updates a task
func (r *TaskRepository) Update(ctx context.Context, id uuid.UUID, update *domain.TaskUpdate) (*domain.Task, error) {
	query := `
		UPDATE tasks
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description),
		    time_budget = COALESCE($4, time_budget),
		    deadline = COALESCE($5, deadline),
		    status = COALESCE($6, status),
		    priority = COALESCE($7, priority),
		    is_recurring = COALESCE($8, is_recurring),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + taskColumns

	task, err := scanTask(r.db.Pool.QueryRow(ctx, query, id,
		update.Name, update.Description, update.TimeBudget, update.Deadline,
		update.Status, update.Priority, update.IsRecurring))
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// Delete deletes a task; tracking records cascade
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete task: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
