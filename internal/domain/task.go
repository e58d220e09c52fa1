package domain

import (
	"time"

	"github.com/google/uuid"
)

// Task statuses
const (
	TaskStatusPending = "pending"
	TaskStatusStarted = "started"
	TaskStatusFailed  = "failed"
	TaskStatusDone    = "done"
)

// Task is a unit of work inside a goal, carrying a time budget in minutes
type Task struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	GoalID      uuid.UUID  `json:"goal_id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	TimeBudget  int        `json:"time_budget"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Status      string     `json:"status"`
	Priority    int        `json:"priority"`
	IsRecurring bool       `json:"is_recurring"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskCreate represents task creation data
type TaskCreate struct {
	GoalID      uuid.UUID  `json:"goal_id" validate:"required"`
	Name        string     `json:"name" validate:"required,max=256"`
	Description *string    `json:"description,omitempty"`
	TimeBudget  int        `json:"time_budget" validate:"gte=0"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Priority    int        `json:"priority" validate:"omitempty,gte=1,lte=10"`
	IsRecurring bool       `json:"is_recurring"`
}

// TaskUpdate represents task update data
type TaskUpdate struct {
	Name        *string    `json:"name,omitempty" validate:"omitempty,max=256"`
	Description *string    `json:"description,omitempty"`
	TimeBudget  *int       `json:"time_budget,omitempty" validate:"omitempty,gte=0"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Status      *string    `json:"status,omitempty" validate:"omitempty,oneof=pending started failed done"`
	Priority    *int       `json:"priority,omitempty" validate:"omitempty,gte=1,lte=10"`
	IsRecurring *bool      `json:"is_recurring,omitempty"`
}

// TaskWithTracking is a task joined with the caller's currently open tracking
// record, if any
type TaskWithTracking struct {
	Task
	ActiveTracking *TrackingRecord `json:"active_tracking"`
}

// GoalBudget is the summed time budget of a goal's tasks
type GoalBudget struct {
	GoalID                 uuid.UUID `json:"goal_id"`
	TotalTimeBudgetMinutes int       `json:"total_time_budget_minutes"`
	TotalTimeBudgetHours   float64   `json:"total_time_budget_hours"`
	Warning                string    `json:"warning,omitempty"`
}
