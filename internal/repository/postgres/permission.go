package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/focusflowhq/backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PermissionRepository handles permission data access
type PermissionRepository struct {
	db *DB
}

// NewPermissionRepository creates a new permission repository
func NewPermissionRepository(db *DB) *PermissionRepository {
	return &PermissionRepository{db: db}
}

const permissionColumns = `id, user_id, resource_id, resource_type, can_list, can_edit, can_delete, can_add_task, can_submit_record, created_at, updated_at`

func scanPermission(row pgx.Row) (*domain.Permission, error) {
	var p domain.Permission
	err := row.Scan(&p.ID, &p.UserID, &p.ResourceID, &p.ResourceType,
		&p.CanList, &p.CanEdit, &p.CanDelete, &p.CanAddTask, &p.CanSubmitRecord,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Create creates a new permission row
func (r *PermissionRepository) Create(ctx context.Context, perm *domain.Permission) error {
	query := `
		INSERT INTO permissions (id, user_id, resource_id, resource_type,
		                         can_list, can_edit, can_delete, can_add_task, can_submit_record,
		                         created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		perm.ID,
		perm.UserID,
		perm.ResourceID,
		perm.ResourceType,
		perm.CanList,
		perm.CanEdit,
		perm.CanDelete,
		perm.CanAddTask,
		perm.CanSubmitRecord,
		perm.CreatedAt,
		perm.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create permission: %w", err)
	}

	return nil
}

// Get retrieves the permission row for a (user, resource) pair
func (r *PermissionRepository) Get(ctx context.Context, userID, resourceID uuid.UUID, resourceType string) (*domain.Permission, error) {
	query := `SELECT ` + permissionColumns + ` FROM permissions WHERE user_id = $1 AND resource_id = $2 AND resource_type = $3`

	perm, err := scanPermission(r.db.Pool.QueryRow(ctx, query, userID, resourceID, resourceType))
	if err != nil {
		return nil, fmt.Errorf("failed to get permission: %w", err)
	}
	return perm, nil
}

// Upsert inserts or replaces the flags for a (user, resource) pair
func (r *PermissionRepository) Upsert(ctx context.Context, perm *domain.Permission) (*domain.Permission, error) {
	query := `
		INSERT INTO permissions (id, user_id, resource_id, resource_type,
		                         can_list, can_edit, can_delete, can_add_task, can_submit_record,
		                         created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id, resource_id, resource_type) DO UPDATE
		SET can_list = $5, can_edit = $6, can_delete = $7,
		    can_add_task = $8, can_submit_record = $9, updated_at = NOW()
		RETURNING ` + permissionColumns

	updated, err := scanPermission(r.db.Pool.QueryRow(ctx, query,
		perm.ID, perm.UserID, perm.ResourceID, perm.ResourceType,
		perm.CanList, perm.CanEdit, perm.CanDelete, perm.CanAddTask, perm.CanSubmitRecord,
		perm.CreatedAt, perm.UpdatedAt))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert permission: %w", err)
	}
	return updated, nil
}

// DeleteWorkspaceLevel removes the user's workspace-level permission row
func (r *PermissionRepository) DeleteWorkspaceLevel(ctx context.Context, userID, workspaceID uuid.UUID) error {
	query := `DELETE FROM permissions WHERE user_id = $1 AND resource_id = $2 AND resource_type = 'workspace'`

	_, err := r.db.Pool.Exec(ctx, query, userID, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to delete workspace permission: %w", err)
	}
	return nil
}

// DeleteAllInWorkspace removes every permission row the user holds inside the
// workspace: the workspace-level row plus rows for its goals and tasks
func (r *PermissionRepository) DeleteAllInWorkspace(ctx context.Context, userID, workspaceID uuid.UUID) error {
	query := `
		DELETE FROM permissions
		WHERE user_id = $1
		  AND (
		      (resource_type = 'workspace' AND resource_id = $2)
		      OR (resource_type = 'goal' AND resource_id IN (
		          SELECT id FROM goals WHERE workspace_id = $2
		      ))
		      OR (resource_type = 'task' AND resource_id IN (
		          SELECT t.id FROM tasks t
		          INNER JOIN goals g ON g.id = t.goal_id
		          WHERE g.workspace_id = $2
		      ))
		  )
	`

	_, err := r.db.Pool.Exec(ctx, query, userID, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to delete workspace permissions: %w", err)
	}
	return nil
}
