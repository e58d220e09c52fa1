package domain

import (
	"time"

	"github.com/google/uuid"
)

// Summary periods
const (
	PeriodDay   = "day"
	PeriodMonth = "month"
	PeriodYear  = "year"
	PeriodTotal = "total"
)

// TrackingRecord is one continuous timed interval of work on a task. An open
// record has a nil EndTime; Duration is computed in whole seconds on stop.
type TrackingRecord struct {
	ID        uuid.UUID  `json:"id"`
	TaskID    uuid.UUID  `json:"task_id"`
	UserID    uuid.UUID  `json:"user_id"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Duration  *int64     `json:"duration"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Open reports whether the record is still running
func (r *TrackingRecord) Open() bool {
	return r.EndTime == nil
}

// TrackingStart is the body of a start request
type TrackingStart struct {
	StartTime *time.Time `json:"start_time,omitempty"`
}

// TrackingStop is the body of a stop request
type TrackingStop struct {
	StopTime *time.Time `json:"stop_time,omitempty"`
}

// ManualRecordCreate is a fully specified backfill record. Duration is supplied
// by the caller and stored verbatim; no overlap validation is performed.
type ManualRecordCreate struct {
	StartTime time.Time `json:"start_time" validate:"required"`
	StopTime  time.Time `json:"stop_time" validate:"required"`
	Duration  int64     `json:"duration" validate:"gte=0"`
}

// ActiveTask identifies the task blocking a new timer
type ActiveTask struct {
	TaskID   uuid.UUID `json:"task_id"`
	TaskName string    `json:"task_name"`
}

// TaskSummary is one row of a tracking summary: total seconds per task name,
// with the bucket start attached for day/month/year periods
type TaskSummary struct {
	TaskName             string     `json:"task_name"`
	TotalDurationSeconds int64      `json:"total_duration_seconds"`
	Period               *time.Time `json:"period,omitempty"`
}

// SummaryFilter narrows a summary to a goal and/or workspace
type SummaryFilter struct {
	WorkspaceID *uuid.UUID
	GoalID      *uuid.UUID
}
