package domain

import (
	"time"

	"github.com/google/uuid"
)

// Goal statuses
const (
	GoalStatusPending = "pending"
	GoalStatusReached = "reached"
)

// Goal is a milestone inside a workspace
type Goal struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	WorkspaceID uuid.UUID  `json:"workspace_id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// GoalCreate represents goal creation data
type GoalCreate struct {
	WorkspaceID uuid.UUID  `json:"workspace_id" validate:"required"`
	Name        string     `json:"name" validate:"required,max=256"`
	Description *string    `json:"description,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// GoalUpdate represents goal update data
type GoalUpdate struct {
	Name        *string    `json:"name,omitempty" validate:"omitempty,max=256"`
	Description *string    `json:"description,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Status      *string    `json:"status,omitempty" validate:"omitempty,oneof=pending reached"`
}

// GoalOverview is a goal row with aggregates for list views. TotalProgress is
// percent of the goal's time budget credited: done tasks credit their full
// budget, others credit minutes tracked today.
type GoalOverview struct {
	Goal
	TaskCount      int     `json:"task_count"`
	TotalProgress  float64 `json:"total_progress"`
	HasRunningTask bool    `json:"has_running_task"`
}

// GoalOverviewRow is the raw aggregate row the repository returns; the
// service derives TotalProgress from it
type GoalOverviewRow struct {
	Goal
	TaskCount           int
	HasRunningTask      bool
	BudgetMinutes       int
	DoneBudgetMinutes   int
	TrackedTodayMinutes float64
}
