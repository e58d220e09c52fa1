package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/focusflowhq/backend/internal/access"
	"github.com/focusflowhq/backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AccessRepository provides the reads the access resolver needs. It satisfies
// access.Store.
type AccessRepository struct {
	db *DB
}

// NewAccessRepository creates a new access repository
func NewAccessRepository(db *DB) *AccessRepository {
	return &AccessRepository{db: db}
}

var _ access.Store = (*AccessRepository)(nil)

// GetWorkspaceRef resolves a workspace to its owner; the workspace contains itself
func (r *AccessRepository) GetWorkspaceRef(ctx context.Context, id uuid.UUID) (*access.Ref, error) {
	var ref access.Ref
	err := r.db.Pool.QueryRow(ctx,
		`SELECT user_id, id FROM workspaces WHERE id = $1`, id).
		Scan(&ref.OwnerID, &ref.WorkspaceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve workspace: %w", err)
	}
	return &ref, nil
}

// GetGoalRef resolves a goal to its owner and containing workspace
func (r *AccessRepository) GetGoalRef(ctx context.Context, id uuid.UUID) (*access.Ref, error) {
	var ref access.Ref
	err := r.db.Pool.QueryRow(ctx,
		`SELECT user_id, workspace_id FROM goals WHERE id = $1`, id).
		Scan(&ref.OwnerID, &ref.WorkspaceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve goal: %w", err)
	}
	return &ref, nil
}

// GetTaskRef resolves a task to its owner and, through its goal, the
// containing workspace
func (r *AccessRepository) GetTaskRef(ctx context.Context, id uuid.UUID) (*access.Ref, error) {
	query := `
		SELECT t.user_id, g.workspace_id
		FROM tasks t
		INNER JOIN goals g ON g.id = t.goal_id
		WHERE t.id = $1
	`

	var ref access.Ref
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(&ref.OwnerID, &ref.WorkspaceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve task: %w", err)
	}
	return &ref, nil
}

// GetTrackingRecordTask resolves a tracking record to its parent task
func (r *AccessRepository) GetTrackingRecordTask(ctx context.Context, id uuid.UUID) (*uuid.UUID, error) {
	var taskID uuid.UUID
	err := r.db.Pool.QueryRow(ctx,
		`SELECT task_id FROM task_tracking_records WHERE id = $1`, id).Scan(&taskID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve tracking record: %w", err)
	}
	return &taskID, nil
}

// ListShares returns all share rows between a workspace and a user
func (r *AccessRepository) ListShares(ctx context.Context, workspaceID, userID uuid.UUID) ([]domain.WorkspaceShare, error) {
	query := `
		SELECT ` + shareColumns + `
		FROM workspace_shares
		WHERE workspace_id = $1 AND shared_with_user_id = $2
	`

	rows, err := r.db.Pool.Query(ctx, query, workspaceID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shares: %w", err)
	}
	defer rows.Close()

	var shares []domain.WorkspaceShare
	for rows.Next() {
		var s domain.WorkspaceShare
		if err := rows.Scan(&s.ID, &s.WorkspaceID, &s.SharedWithUserID, &s.InvitedByUserID,
			&s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		shares = append(shares, s)
	}

	return shares, rows.Err()
}

// GetPermission retrieves the permission row for a (user, resource) pair
func (r *AccessRepository) GetPermission(ctx context.Context, userID, resourceID uuid.UUID, resourceType string) (*domain.Permission, error) {
	query := `SELECT ` + permissionColumns + ` FROM permissions WHERE user_id = $1 AND resource_id = $2 AND resource_type = $3`

	perm, err := scanPermission(r.db.Pool.QueryRow(ctx, query, userID, resourceID, resourceType))
	if err != nil {
		return nil, fmt.Errorf("failed to get permission: %w", err)
	}
	return perm, nil
}
