package service

import (
	"context"
	"testing"

	"github.com/focusflowhq/backend/internal/clock"
	"github.com/focusflowhq/backend/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newShareService(
	shareRepo *MockShareRepository,
	permRepo *MockPermissionRepository,
	wsRepo *MockShareWorkspaceRepository,
	userRepo *MockShareUserRepository,
) *ShareService {
	return NewShareService(shareRepo, permRepo, wsRepo, userRepo, clock.System())
}

func TestShare_NonOwnerLooksLikeMissingWorkspace(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	caller := uuid.New()

	wsRepo := new(MockShareWorkspaceRepository)
	wsRepo.On("IsOwner", ctx, workspaceID, caller).Return(false, nil)

	svc := newShareService(new(MockShareRepository), new(MockPermissionRepository), wsRepo, new(MockShareUserRepository))
	_, err := svc.Share(ctx, caller, workspaceID, domain.ShareCreate{Identifier: "bob"})

	assert.ErrorIs(t, err, domain.ErrResourceNotFound)
}

func TestShare_UnknownInvitee(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	owner := uuid.New()

	wsRepo := new(MockShareWorkspaceRepository)
	wsRepo.On("IsOwner", ctx, workspaceID, owner).Return(true, nil)
	userRepo := new(MockShareUserRepository)
	userRepo.On("GetByIdentifier", ctx, "nobody").Return(nil, nil)

	svc := newShareService(new(MockShareRepository), new(MockPermissionRepository), wsRepo, userRepo)
	_, err := svc.Share(ctx, owner, workspaceID, domain.ShareCreate{Identifier: "nobody"})

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestShare_ExistingRowBlocksReinvite(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	owner := uuid.New()
	invitee := &domain.User{ID: uuid.New(), Username: "bob"}

	wsRepo := new(MockShareWorkspaceRepository)
	wsRepo.On("IsOwner", ctx, workspaceID, owner).Return(true, nil)
	userRepo := new(MockShareUserRepository)
	userRepo.On("GetByIdentifier", ctx, "bob").Return(invitee, nil)
	shareRepo := new(MockShareRepository)
	shareRepo.On("GetForWorkspaceAndUser", ctx, workspaceID, invitee.ID).
		Return(&domain.WorkspaceShare{Status: domain.ShareStatusDeclined}, nil)

	svc := newShareService(shareRepo, new(MockPermissionRepository), wsRepo, userRepo)
	_, err := svc.Share(ctx, owner, workspaceID, domain.ShareCreate{Identifier: "bob"})

	assert.ErrorIs(t, err, domain.ErrAlreadyShared)
	shareRepo.AssertNotCalled(t, "Create")
}

func TestShare_CreatesPendingShareAndSeedsPermission(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	owner := uuid.New()
	invitee := &domain.User{ID: uuid.New(), Username: "bob"}

	wsRepo := new(MockShareWorkspaceRepository)
	wsRepo.On("IsOwner", ctx, workspaceID, owner).Return(true, nil)
	userRepo := new(MockShareUserRepository)
	userRepo.On("GetByIdentifier", ctx, "bob@example.com").Return(invitee, nil)
	shareRepo := new(MockShareRepository)
	shareRepo.On("GetForWorkspaceAndUser", ctx, workspaceID, invitee.ID).Return(nil, nil)
	shareRepo.On("Create", ctx, mock.AnythingOfType("*domain.WorkspaceShare")).Return(nil)
	permRepo := new(MockPermissionRepository)
	permRepo.On("Create", ctx, mock.MatchedBy(func(p *domain.Permission) bool {
		return p.UserID == invitee.ID &&
			p.ResourceID == workspaceID &&
			p.ResourceType == domain.ResourceWorkspace &&
			p.CanList && p.CanEdit && !p.CanDelete
	})).Return(nil)

	svc := newShareService(shareRepo, permRepo, wsRepo, userRepo)
	share, err := svc.Share(ctx, owner, workspaceID, domain.ShareCreate{
		Identifier: "bob@example.com",
		CanList:    true,
		CanEdit:    true,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ShareStatusPending, share.Status)
	assert.Equal(t, invitee.ID, share.SharedWithUserID)
	assert.Equal(t, owner, share.InvitedByUserID)
	permRepo.AssertExpectations(t)
}

func TestRespond_NonPendingIsTerminal(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	shareID := uuid.New()

	shareRepo := new(MockShareRepository)
	shareRepo.On("GetByID", ctx, shareID).
		Return(&domain.WorkspaceShare{ID: shareID, SharedWithUserID: userID, Status: domain.ShareStatusAccepted}, nil)

	svc := newShareService(shareRepo, new(MockPermissionRepository), new(MockShareWorkspaceRepository), new(MockShareUserRepository))
	_, err := svc.Respond(ctx, userID, shareID, domain.ShareResponse{Response: "accept"})

	assert.ErrorIs(t, err, domain.ErrShareNotPending)
	shareRepo.AssertNotCalled(t, "UpdateStatus")
}

func TestRespond_OnlyInviteeMayRespond(t *testing.T) {
	ctx := context.Background()
	shareID := uuid.New()

	shareRepo := new(MockShareRepository)
	shareRepo.On("GetByID", ctx, shareID).
		Return(&domain.WorkspaceShare{ID: shareID, SharedWithUserID: uuid.New(), Status: domain.ShareStatusPending}, nil)

	svc := newShareService(shareRepo, new(MockPermissionRepository), new(MockShareWorkspaceRepository), new(MockShareUserRepository))
	_, err := svc.Respond(ctx, uuid.New(), shareID, domain.ShareResponse{Response: "accept"})

	assert.ErrorIs(t, err, domain.ErrResourceNotFound)
}

func TestRespond_RejectsUnknownResponseValue(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	shareID := uuid.New()

	shareRepo := new(MockShareRepository)
	shareRepo.On("GetByID", ctx, shareID).
		Return(&domain.WorkspaceShare{ID: shareID, SharedWithUserID: userID, Status: domain.ShareStatusPending}, nil)

	svc := newShareService(shareRepo, new(MockPermissionRepository), new(MockShareWorkspaceRepository), new(MockShareUserRepository))
	_, err := svc.Respond(ctx, userID, shareID, domain.ShareResponse{Response: "maybe"})

	assert.ErrorIs(t, err, domain.ErrInvalidShareResponse)
	shareRepo.AssertNotCalled(t, "UpdateStatus")
}

func TestRespond_DeclineDropsSeededPermission(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	userID := uuid.New()
	shareID := uuid.New()

	pending := &domain.WorkspaceShare{ID: shareID, WorkspaceID: workspaceID, SharedWithUserID: userID, Status: domain.ShareStatusPending}
	declined := &domain.WorkspaceShare{ID: shareID, WorkspaceID: workspaceID, SharedWithUserID: userID, Status: domain.ShareStatusDeclined}

	shareRepo := new(MockShareRepository)
	shareRepo.On("GetByID", ctx, shareID).Return(pending, nil)
	shareRepo.On("UpdateStatus", ctx, shareID, domain.ShareStatusDeclined).Return(declined, nil)
	permRepo := new(MockPermissionRepository)
	permRepo.On("DeleteWorkspaceLevel", ctx, userID, workspaceID).Return(nil)

	svc := newShareService(shareRepo, permRepo, new(MockShareWorkspaceRepository), new(MockShareUserRepository))
	got, err := svc.Respond(ctx, userID, shareID, domain.ShareResponse{Response: "decline"})

	require.NoError(t, err)
	assert.Equal(t, domain.ShareStatusDeclined, got.Status)
	permRepo.AssertExpectations(t)
}

func TestRespond_AcceptKeepsPermission(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	userID := uuid.New()
	shareID := uuid.New()

	pending := &domain.WorkspaceShare{ID: shareID, WorkspaceID: workspaceID, SharedWithUserID: userID, Status: domain.ShareStatusPending}
	accepted := &domain.WorkspaceShare{ID: shareID, WorkspaceID: workspaceID, SharedWithUserID: userID, Status: domain.ShareStatusAccepted}

	shareRepo := new(MockShareRepository)
	shareRepo.On("GetByID", ctx, shareID).Return(pending, nil)
	shareRepo.On("UpdateStatus", ctx, shareID, domain.ShareStatusAccepted).Return(accepted, nil)
	permRepo := new(MockPermissionRepository)

	svc := newShareService(shareRepo, permRepo, new(MockShareWorkspaceRepository), new(MockShareUserRepository))
	got, err := svc.Respond(ctx, userID, shareID, domain.ShareResponse{Response: "accept"})

	require.NoError(t, err)
	assert.Equal(t, domain.ShareStatusAccepted, got.Status)
	permRepo.AssertNotCalled(t, "DeleteWorkspaceLevel")
}

func TestUpdatePermissions_ZeroesFlagsThatAreNeverRead(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	owner := uuid.New()
	target := uuid.New()
	taskID := uuid.New()

	wsRepo := new(MockShareWorkspaceRepository)
	wsRepo.On("IsOwner", ctx, workspaceID, owner).Return(true, nil)
	shareRepo := new(MockShareRepository)
	shareRepo.On("GetForWorkspaceAndUser", ctx, workspaceID, target).
		Return(&domain.WorkspaceShare{Status: domain.ShareStatusAccepted}, nil)
	permRepo := new(MockPermissionRepository)
	permRepo.On("Upsert", ctx, mock.MatchedBy(func(p *domain.Permission) bool {
		// addTask is dead weight on a task row even when the caller sets it
		return p.ResourceType == domain.ResourceTask && !p.CanAddTask && p.CanSubmitRecord
	})).Return(&domain.Permission{}, nil)

	svc := newShareService(shareRepo, permRepo, wsRepo, new(MockShareUserRepository))
	_, err := svc.UpdatePermissions(ctx, owner, workspaceID, target, domain.PermissionUpdate{
		ResourceID:      taskID,
		ResourceType:    domain.ResourceTask,
		CanAddTask:      true,
		CanSubmitRecord: true,
	})

	require.NoError(t, err)
	permRepo.AssertExpectations(t)
}

func TestRevoke_RemovesShareAndAllPermissions(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	owner := uuid.New()
	target := uuid.New()
	shareID := uuid.New()

	wsRepo := new(MockShareWorkspaceRepository)
	wsRepo.On("IsOwner", ctx, workspaceID, owner).Return(true, nil)
	shareRepo := new(MockShareRepository)
	shareRepo.On("GetForWorkspaceAndUser", ctx, workspaceID, target).
		Return(&domain.WorkspaceShare{ID: shareID, Status: domain.ShareStatusAccepted}, nil)
	shareRepo.On("Delete", ctx, shareID).Return(nil)
	permRepo := new(MockPermissionRepository)
	permRepo.On("DeleteAllInWorkspace", ctx, target, workspaceID).Return(nil)

	svc := newShareService(shareRepo, permRepo, wsRepo, new(MockShareUserRepository))
	err := svc.Revoke(ctx, owner, workspaceID, target)

	require.NoError(t, err)
	shareRepo.AssertExpectations(t)
	permRepo.AssertExpectations(t)
}

func TestSharedUsers_StrangerLooksLikeMissingWorkspace(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	caller := uuid.New()

	wsRepo := new(MockShareWorkspaceRepository)
	wsRepo.On("IsOwner", ctx, workspaceID, caller).Return(false, nil)
	shareRepo := new(MockShareRepository)
	shareRepo.On("GetForWorkspaceAndUser", ctx, workspaceID, caller).Return(nil, nil)

	svc := newShareService(shareRepo, new(MockPermissionRepository), wsRepo, new(MockShareUserRepository))
	_, err := svc.SharedUsers(ctx, caller, workspaceID)

	assert.ErrorIs(t, err, domain.ErrResourceNotFound)
}
