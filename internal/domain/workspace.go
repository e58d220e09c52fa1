package domain

import (
	"time"

	"github.com/google/uuid"
)

// Workspace is the top-level container for goals and tasks, owned by one user
type Workspace struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	GroupName   *string   `json:"group_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// WorkspaceCreate represents workspace creation data
type WorkspaceCreate struct {
	Name        string  `json:"name" validate:"required,max=256"`
	Description *string `json:"description,omitempty"`
	GroupName   *string `json:"group_name,omitempty" validate:"omitempty,max=256"`
}

// WorkspaceUpdate represents workspace update data
type WorkspaceUpdate struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=256"`
	Description *string `json:"description,omitempty"`
	GroupName   *string `json:"group_name,omitempty" validate:"omitempty,max=256"`
}

// WorkspaceOverview is a workspace row with aggregate counters for list views
type WorkspaceOverview struct {
	Workspace
	GoalCount     int     `json:"goal_count"`
	TaskCount     int     `json:"task_count"`
	TotalProgress float64 `json:"total_progress"`
}

// WorkspaceOverviewRow is the raw aggregate row the repository returns; the
// service derives TotalProgress from it
type WorkspaceOverviewRow struct {
	Workspace
	GoalCount           int
	TaskCount           int
	BudgetMinutes       int
	DoneBudgetMinutes   int
	TrackedTodayMinutes float64
}
