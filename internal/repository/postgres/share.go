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

// ShareRepository handles workspace share data access
type ShareRepository struct {
	db *DB
}

// NewShareRepository creates a new share repository
func NewShareRepository(db *DB) *ShareRepository {
	return &ShareRepository{db: db}
}

const shareColumns = `id, workspace_id, shared_with_user_id, invited_by_user_id, status, created_at, updated_at`

func scanShare(row pgx.Row) (*domain.WorkspaceShare, error) {
	var s domain.WorkspaceShare
	err := row.Scan(&s.ID, &s.WorkspaceID, &s.SharedWithUserID, &s.InvitedByUserID,
		&s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// Create creates a new share invitation
func (r *ShareRepository) Create(ctx context.Context, share *domain.WorkspaceShare) error {
	query := `
		INSERT INTO workspace_shares (id, workspace_id, shared_with_user_id, invited_by_user_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		share.ID,
		share.WorkspaceID,
		share.SharedWithUserID,
		share.InvitedByUserID,
		share.Status,
		share.CreatedAt,
		share.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create share: %w", err)
	}

	return nil
}

// GetByID retrieves a share by ID
func (r *ShareRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.WorkspaceShare, error) {
	query := `SELECT ` + shareColumns + ` FROM workspace_shares WHERE id = $1`

	share, err := scanShare(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get share: %w", err)
	}
	return share, nil
}

// GetForWorkspaceAndUser retrieves the share between a workspace and a user,
// whatever its status
func (r *ShareRepository) GetForWorkspaceAndUser(ctx context.Context, workspaceID, userID uuid.UUID) (*domain.WorkspaceShare, error) {
	query := `SELECT ` + shareColumns + ` FROM workspace_shares WHERE workspace_id = $1 AND shared_with_user_id = $2`

	share, err := scanShare(r.db.Pool.QueryRow(ctx, query, workspaceID, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get share: %w", err)
	}
	return share, nil
}

// UpdateStatus transitions a share to the given status
func (r *ShareRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*domain.WorkspaceShare, error) {
	query := `
		UPDATE workspace_shares
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + shareColumns

	share, err := scanShare(r.db.Pool.QueryRow(ctx, query, id, status))
	if err != nil {
		return nil, fmt.Errorf("failed to update share status: %w", err)
	}
	return share, nil
}

// Delete removes a share row
func (r *ShareRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM workspace_shares WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete share: %w", err)
	}
	return nil
}

// ListSharedUsers returns every collaborator on a workspace with their
// invitation status and workspace-level permission, if one is set
func (r *ShareRepository) ListSharedUsers(ctx context.Context, workspaceID uuid.UUID) ([]domain.SharedUser, error) {
	query := `
		SELECT u.id, u.username, u.email, s.status, s.invited_by_user_id,
		       p.id, p.user_id, p.resource_id, p.resource_type,
		       p.can_list, p.can_edit, p.can_delete, p.can_add_task, p.can_submit_record,
		       p.created_at, p.updated_at
		FROM workspace_shares s
		INNER JOIN users u ON u.id = s.shared_with_user_id
		LEFT JOIN permissions p
		       ON p.user_id = u.id AND p.resource_id = s.workspace_id AND p.resource_type = 'workspace'
		WHERE s.workspace_id = $1
		ORDER BY u.username
	`

	rows, err := r.db.Pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shared users: %w", err)
	}
	defer rows.Close()

	var result []domain.SharedUser
	for rows.Next() {
		var su domain.SharedUser
		var (
			permID       *uuid.UUID
			permUserID   *uuid.UUID
			resourceID   *uuid.UUID
			resourceType *string
			canList      *bool
			canEdit      *bool
			canDelete    *bool
			canAddTask   *bool
			canSubmit    *bool
			createdAt    *time.Time
			updatedAt    *time.Time
		)
		if err := rows.Scan(
			&su.UserID, &su.Username, &su.Email, &su.Status, &su.InvitedByUserID,
			&permID, &permUserID, &resourceID, &resourceType,
			&canList, &canEdit, &canDelete, &canAddTask, &canSubmit,
			&createdAt, &updatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan shared user: %w", err)
		}
		if permID != nil {
			su.Permission = &domain.Permission{
				ID:              *permID,
				UserID:          *permUserID,
				ResourceID:      *resourceID,
				ResourceType:    *resourceType,
				CanList:         *canList,
				CanEdit:         *canEdit,
				CanDelete:       *canDelete,
				CanAddTask:      *canAddTask,
				CanSubmitRecord: *canSubmit,
				CreatedAt:       *createdAt,
				UpdatedAt:       *updatedAt,
			}
		}
		result = append(result, su)
	}

	return result, rows.Err()
}

// ListInvitationsForUser returns the shares extended to a user, enriched with
// workspace and inviter details
func (r *ShareRepository) ListInvitationsForUser(ctx context.Context, userID uuid.UUID) ([]domain.Invitation, error) {
	query := `
		SELECT s.id, s.workspace_id, s.shared_with_user_id, s.invited_by_user_id, s.status,
		       s.created_at, s.updated_at, w.name, u.username
		FROM workspace_shares s
		INNER JOIN workspaces w ON w.id = s.workspace_id
		INNER JOIN users u ON u.id = s.invited_by_user_id
		WHERE s.shared_with_user_id = $1
		ORDER BY s.created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	defer rows.Close()

	var result []domain.Invitation
	for rows.Next() {
		var inv domain.Invitation
		if err := rows.Scan(
			&inv.ID, &inv.WorkspaceID, &inv.SharedWithUserID, &inv.InvitedByUserID, &inv.Status,
			&inv.CreatedAt, &inv.UpdatedAt, &inv.WorkspaceName, &inv.InvitedByUsername,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invitation: %w", err)
		}
		result = append(result, inv)
	}

	return result, rows.Err()
}
