package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/focusflowhq/backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// TrackingRepository handles tracking record data access
type TrackingRepository struct {
	db *DB
}

// NewTrackingRepository creates a new tracking repository
func NewTrackingRepository(db *DB) *TrackingRepository {
	return &TrackingRepository{db: db}
}

const trackingColumns = `id, task_id, user_id, start_time, end_time, duration, created_at, updated_at`

func scanRecord(row pgx.Row) (*domain.TrackingRecord, error) {
	var rec domain.TrackingRecord
	err := row.Scan(&rec.ID, &rec.TaskID, &rec.UserID, &rec.StartTime, &rec.EndTime,
		&rec.Duration, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation. The partial unique index on (user_id) WHERE end_time IS NULL
// surfaces concurrent start races through this.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Insert inserts a tracking record, open or closed
func (r *TrackingRepository) Insert(ctx context.Context, rec *domain.TrackingRecord) error {
	query := `
		INSERT INTO task_tracking_records (id, task_id, user_id, start_time, end_time, duration, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		rec.ID,
		rec.TaskID,
		rec.UserID,
		rec.StartTime,
		rec.EndTime,
		rec.Duration,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return domain.ErrOpenRecordExists
		}
		return fmt.Errorf("failed to insert tracking record: %w", err)
	}

	return nil
}

// GetByIDForUser retrieves a tracking record by ID, scoped to its user
func (r *TrackingRepository) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*domain.TrackingRecord, error) {
	query := `SELECT ` + trackingColumns + ` FROM task_tracking_records WHERE id = $1 AND user_id = $2`

	rec, err := scanRecord(r.db.Pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get tracking record: %w", err)
	}
	return rec, nil
}

// GetActiveForUser returns the task behind the user's open tracking record,
// if any. Open records are unique per user, enforced by a partial index.
func (r *TrackingRepository) GetActiveForUser(ctx context.Context, userID uuid.UUID) (*domain.ActiveTask, error) {
	query := `
		SELECT r.task_id, t.name
		FROM task_tracking_records r
		INNER JOIN tasks t ON t.id = r.task_id
		WHERE r.user_id = $1 AND r.end_time IS NULL
		LIMIT 1
	`

	var active domain.ActiveTask
	err := r.db.Pool.QueryRow(ctx, query, userID).Scan(&active.TaskID, &active.TaskName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active record: %w", err)
	}

	return &active, nil
}

// Stop closes a record, setting its end time and duration
func (r *TrackingRepository) Stop(ctx context.Context, id uuid.UUID, endTime time.Time, duration int64) (*domain.TrackingRecord, error) {
	query := `
		UPDATE task_tracking_records
		SET end_time = $2, duration = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + trackingColumns

	rec, err := scanRecord(r.db.Pool.QueryRow(ctx, query, id, endTime, duration))
	if err != nil {
		return nil, fmt.Errorf("failed to stop tracking record: %w", err)
	}
	return rec, nil
}

// CloseOpenForTask closes any open records for the task at the given instant,
// computing elapsed wall-clock duration. Pass an exclude ID to leave one
// record untouched. Guards against duplicate-open-record anomalies.
func (r *TrackingRepository) CloseOpenForTask(ctx context.Context, taskID uuid.UUID, at time.Time, exclude *uuid.UUID) error {
	query := `
		UPDATE task_tracking_records
		SET end_time = $2,
		    duration = FLOOR(EXTRACT(EPOCH FROM ($2 - start_time)))::bigint,
		    updated_at = NOW()
		WHERE task_id = $1 AND end_time IS NULL AND ($3::uuid IS NULL OR id <> $3)
	`

	_, err := r.db.Pool.Exec(ctx, query, taskID, at, exclude)
	if err != nil {
		return fmt.Errorf("failed to close open records: %w", err)
	}
	return nil
}

// Summarize sums stopped durations per task name over the user's own records.
// Visible tasks are those the user owns plus tasks in workspaces shared with
// the user, regardless of share status; grouping by name merges both sets.
// Pass a nil bounds pair for the total period.
func (r *TrackingRepository) Summarize(ctx context.Context, userID uuid.UUID, from, to *time.Time, filter domain.SummaryFilter) ([]domain.TaskSummary, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT t.name, COALESCE(SUM(r.duration), 0)::bigint
		FROM task_tracking_records r
		INNER JOIN tasks t ON t.id = r.task_id
		INNER JOIN goals g ON g.id = t.goal_id
		WHERE r.user_id = $1
		  AND (t.user_id = $1 OR g.workspace_id IN (
		      SELECT workspace_id FROM workspace_shares WHERE shared_with_user_id = $1
		  ))
	`)

	args := []any{userID}
	if from != nil && to != nil {
		args = append(args, *from)
		sb.WriteString(" AND r.start_time >= $" + strconv.Itoa(len(args)))
		args = append(args, *to)
		sb.WriteString(" AND r.start_time < $" + strconv.Itoa(len(args)))
	}
	if filter.GoalID != nil {
		args = append(args, *filter.GoalID)
		sb.WriteString(" AND t.goal_id = $" + strconv.Itoa(len(args)))
	}
	if filter.WorkspaceID != nil {
		args = append(args, *filter.WorkspaceID)
		sb.WriteString(" AND g.workspace_id = $" + strconv.Itoa(len(args)))
	}

	sb.WriteString(" GROUP BY t.name ORDER BY t.name")

	rows, err := r.db.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize tracking: %w", err)
	}
	defer rows.Close()

	var result []domain.TaskSummary
	for rows.Next() {
		var s domain.TaskSummary
		if err := rows.Scan(&s.TaskName, &s.TotalDurationSeconds); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		result = append(result, s)
	}

	return result, rows.Err()
}
