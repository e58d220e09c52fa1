package service

import (
	"context"

	"github.com/focusflowhq/backend/internal/clock"
	"github.com/focusflowhq/backend/internal/domain"
	"github.com/google/uuid"
)

// ShareRepository is the share access the service needs
type ShareRepository interface {
	Create(ctx context.Context, share *domain.WorkspaceShare) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.WorkspaceShare, error)
	GetForWorkspaceAndUser(ctx context.Context, workspaceID, userID uuid.UUID) (*domain.WorkspaceShare, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*domain.WorkspaceShare, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListSharedUsers(ctx context.Context, workspaceID uuid.UUID) ([]domain.SharedUser, error)
	ListInvitationsForUser(ctx context.Context, userID uuid.UUID) ([]domain.Invitation, error)
}

// PermissionRepository is the permission access the service needs
type PermissionRepository interface {
	Create(ctx context.Context, perm *domain.Permission) error
	Upsert(ctx context.Context, perm *domain.Permission) (*domain.Permission, error)
	DeleteWorkspaceLevel(ctx context.Context, userID, workspaceID uuid.UUID) error
	DeleteAllInWorkspace(ctx context.Context, userID, workspaceID uuid.UUID) error
}

// ShareWorkspaceRepository is the workspace access the share service needs
type ShareWorkspaceRepository interface {
	IsOwner(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error)
}

// ShareUserRepository resolves invitees by username or email
type ShareUserRepository interface {
	GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
}

// ShareService handles the workspace sharing lifecycle: inviting, responding,
// revoking and tuning per-resource permissions.
type ShareService struct {
	shareRepo      ShareRepository
	permissionRepo PermissionRepository
	workspaceRepo  ShareWorkspaceRepository
	userRepo       ShareUserRepository
	clock          clock.Clock
}

// NewShareService creates a new share service
func NewShareService(
	shareRepo ShareRepository,
	permissionRepo PermissionRepository,
	workspaceRepo ShareWorkspaceRepository,
	userRepo ShareUserRepository,
	clk clock.Clock,
) *ShareService {
	return &ShareService{
		shareRepo:      shareRepo,
		permissionRepo: permissionRepo,
		workspaceRepo:  workspaceRepo,
		userRepo:       userRepo,
		clock:          clk,
	}
}

// requireOwner verifies the caller owns the workspace. Non-owners get the same
// answer as callers naming a workspace that does not exist.
func (s *ShareService) requireOwner(ctx context.Context, workspaceID, userID uuid.UUID) error {
	owner, err := s.workspaceRepo.IsOwner(ctx, workspaceID, userID)
	if err != nil {
		return err
	}
	if !owner {
		return domain.ErrResourceNotFound
	}
	return nil
}

// Share invites a user to the workspace and seeds their workspace-level
// permission with the flags the owner picked. The share starts pending; it
// confers no access until accepted.
func (s *ShareService) Share(ctx context.Context, ownerID, workspaceID uuid.UUID, input domain.ShareCreate) (*domain.WorkspaceShare, error) {
	if err := s.requireOwner(ctx, workspaceID, ownerID); err != nil {
		return nil, err
	}

	invitee, err := s.userRepo.GetByIdentifier(ctx, input.Identifier)
	if err != nil {
		return nil, err
	}
	if invitee == nil {
		return nil, domain.ErrUserNotFound
	}

	existing, err := s.shareRepo.GetForWorkspaceAndUser(ctx, workspaceID, invitee.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyShared
	}

	now := s.clock.Now()
	share := &domain.WorkspaceShare{
		ID:               uuid.New(),
		WorkspaceID:      workspaceID,
		SharedWithUserID: invitee.ID,
		InvitedByUserID:  ownerID,
		Status:           domain.ShareStatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.shareRepo.Create(ctx, share); err != nil {
		return nil, err
	}

	perm := &domain.Permission{
		ID:           uuid.New(),
		UserID:       invitee.ID,
		ResourceID:   workspaceID,
		ResourceType: domain.ResourceWorkspace,
		CanList:      input.CanList,
		CanEdit:      input.CanEdit,
		CanDelete:    input.CanDelete,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.permissionRepo.Create(ctx, perm); err != nil {
		return nil, err
	}

	return share, nil
}

// Respond lets the invitee accept or decline their pending invitation.
// Declining removes the seeded workspace-level permission; the share row stays
// as a terminal declined marker.
func (s *ShareService) Respond(ctx context.Context, userID, shareID uuid.UUID, input domain.ShareResponse) (*domain.WorkspaceShare, error) {
	share, err := s.shareRepo.GetByID(ctx, shareID)
	if err != nil {
		return nil, err
	}
	// Only the invitee may respond; everyone else sees a missing share
	if share == nil || share.SharedWithUserID != userID {
		return nil, domain.ErrResourceNotFound
	}
	if share.Status != domain.ShareStatusPending {
		return nil, domain.ErrShareNotPending
	}

	var status string
	switch input.Response {
	case "accept":
		status = domain.ShareStatusAccepted
	case "decline":
		status = domain.ShareStatusDeclined
	default:
		return nil, domain.ErrInvalidShareResponse
	}

	updated, err := s.shareRepo.UpdateStatus(ctx, share.ID, status)
	if err != nil {
		return nil, err
	}

	if status == domain.ShareStatusDeclined {
		if err := s.permissionRepo.DeleteWorkspaceLevel(ctx, userID, share.WorkspaceID); err != nil {
			return nil, err
		}
	}

	return updated, nil
}

// UpdatePermissions upserts the flags a collaborator holds on a workspace,
// goal or task. Only the workspace owner may change them, and a share row must
// exist for the target user.
func (s *ShareService) UpdatePermissions(ctx context.Context, ownerID, workspaceID, targetUserID uuid.UUID, input domain.PermissionUpdate) (*domain.Permission, error) {
	if err := s.requireOwner(ctx, workspaceID, ownerID); err != nil {
		return nil, err
	}

	share, err := s.shareRepo.GetForWorkspaceAndUser(ctx, workspaceID, targetUserID)
	if err != nil {
		return nil, err
	}
	if share == nil {
		return nil, domain.ErrResourceNotFound
	}

	now := s.clock.Now()
	perm := &domain.Permission{
		ID:              uuid.New(),
		UserID:          targetUserID,
		ResourceID:      input.ResourceID,
		ResourceType:    input.ResourceType,
		CanList:         input.CanList,
		CanEdit:         input.CanEdit,
		CanDelete:       input.CanDelete,
		CanAddTask:      input.CanAddTask,
		CanSubmitRecord: input.CanSubmitRecord,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// addTask is only consulted on goal rows and submitRecord on task rows;
	// on every other row the flag is dead weight, so zero it.
	if input.ResourceType != domain.ResourceGoal {
		perm.CanAddTask = false
	}
	if input.ResourceType != domain.ResourceTask {
		perm.CanSubmitRecord = false
	}

	return s.permissionRepo.Upsert(ctx, perm)
}

// Revoke removes a collaborator from the workspace entirely: the share row and
// every permission row they hold inside it
func (s *ShareService) Revoke(ctx context.Context, ownerID, workspaceID, targetUserID uuid.UUID) error {
	if err := s.requireOwner(ctx, workspaceID, ownerID); err != nil {
		return err
	}

	share, err := s.shareRepo.GetForWorkspaceAndUser(ctx, workspaceID, targetUserID)
	if err != nil {
		return err
	}
	if share == nil {
		return domain.ErrResourceNotFound
	}

	if err := s.shareRepo.Delete(ctx, share.ID); err != nil {
		return err
	}

	return s.permissionRepo.DeleteAllInWorkspace(ctx, targetUserID, workspaceID)
}

// SharedUsers lists the collaborators on a workspace. Visible to the owner and
// to anyone the workspace is shared with, whatever their share status.
func (s *ShareService) SharedUsers(ctx context.Context, userID, workspaceID uuid.UUID) ([]domain.SharedUser, error) {
	owner, err := s.workspaceRepo.IsOwner(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}
	if !owner {
		share, err := s.shareRepo.GetForWorkspaceAndUser(ctx, workspaceID, userID)
		if err != nil {
			return nil, err
		}
		if share == nil {
			return nil, domain.ErrResourceNotFound
		}
	}

	return s.shareRepo.ListSharedUsers(ctx, workspaceID)
}

// MyInvitations lists the invitations extended to the user, newest first
func (s *ShareService) MyInvitations(ctx context.Context, userID uuid.UUID) ([]domain.Invitation, error) {
	return s.shareRepo.ListInvitationsForUser(ctx, userID)
}
