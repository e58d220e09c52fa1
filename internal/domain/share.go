package domain

import (
	"time"

	"github.com/google/uuid"
)

// Share statuses. A share is created pending and transitions exactly once to
// accepted or declined; re-inviting after a decline requires a fresh row.
const (
	ShareStatusPending  = "pending"
	ShareStatusAccepted = "accepted"
	ShareStatusDeclined = "declined"
)

// WorkspaceShare is an invitation granting a user access to a workspace
type WorkspaceShare struct {
	ID               uuid.UUID `json:"id"`
	WorkspaceID      uuid.UUID `json:"workspace_id"`
	SharedWithUserID uuid.UUID `json:"shared_with_user_id"`
	InvitedByUserID  uuid.UUID `json:"invited_by_user_id"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ShareCreate invites a user, looked up by username or email, and sets the
// initial workspace-level permission flags
type ShareCreate struct {
	Identifier string `json:"identifier" validate:"required,max=256"`
	CanList    bool   `json:"can_list"`
	CanEdit    bool   `json:"can_edit"`
	CanDelete  bool   `json:"can_delete"`
}

// ShareResponse accepts or declines a pending invitation
type ShareResponse struct {
	Response string `json:"response" validate:"required,oneof=accept decline"`
}

// SharedUser is one collaborator on a workspace with their invitation state
// and workspace-level permission, if set
type SharedUser struct {
	UserID          uuid.UUID   `json:"user_id"`
	Username        string      `json:"username"`
	Email           string      `json:"email"`
	Status          string      `json:"status"`
	InvitedByUserID uuid.UUID   `json:"invited_by_user_id"`
	Permission      *Permission `json:"permission"`
}

// Invitation is a share row enriched with workspace and inviter details for
// the invitee's inbox
type Invitation struct {
	WorkspaceShare
	WorkspaceName     string `json:"workspace_name"`
	InvitedByUsername string `json:"invited_by_username"`
}
