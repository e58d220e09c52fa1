package domain

import (
	"time"

	"github.com/google/uuid"
)

// Resource types a permission row may reference. The resource id column is
// polymorphic; the type tag disambiguates which table it points into.
const (
	ResourceWorkspace = "workspace"
	ResourceGoal      = "goal"
	ResourceTask      = "task"
)

// Permission is a per-user, per-resource set of capability flags. A row whose
// resource is the workspace itself acts as the fallback for goals and tasks
// inside it.
type Permission struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	ResourceID      uuid.UUID `json:"resource_id"`
	ResourceType    string    `json:"resource_type"`
	CanList         bool      `json:"can_list"`
	CanEdit         bool      `json:"can_edit"`
	CanDelete       bool      `json:"can_delete"`
	CanAddTask      bool      `json:"can_add_task"`
	CanSubmitRecord bool      `json:"can_submit_record"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// PermissionUpdate upserts the flags for a (user, resource) pair
type PermissionUpdate struct {
	ResourceID      uuid.UUID `json:"resource_id" validate:"required"`
	ResourceType    string    `json:"resource_type" validate:"required,oneof=workspace goal task"`
	CanList         bool      `json:"can_list"`
	CanEdit         bool      `json:"can_edit"`
	CanDelete       bool      `json:"can_delete"`
	CanAddTask      bool      `json:"can_add_task"`
	CanSubmitRecord bool      `json:"can_submit_record"`
}
