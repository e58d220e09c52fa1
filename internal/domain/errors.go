package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Access denials. These are decisions, not infrastructure failures; storage
// errors are wrapped separately and must never satisfy errors.Is against any
// of these sentinels.
var (
	ErrResourceNotFound       = errors.New("resource not found")
	ErrNoAccess               = errors.New("no access to this resource")
	ErrShareNotAccepted       = errors.New("share invitation not accepted")
	ErrNoPermissionDefined    = errors.New("no permissions defined for this resource")
	ErrInsufficientPermission = errors.New("insufficient permission for this action")
)

// Tracking rejections
var (
	ErrRecordNotFound   = errors.New("tracking record not found")
	ErrAlreadyStopped   = errors.New("tracking record is already stopped")
	ErrInvalidTimeRange = errors.New("stop time cannot be before start time")
	ErrInvalidPeriod    = errors.New("period must be day, month, year or total")
	// ErrOpenRecordExists surfaces the storage-level guard (partial unique
	// index on open records) when a concurrent start slips past the engine's
	// own check.
	ErrOpenRecordExists = errors.New("an open tracking record already exists for this user")
)

// Account and sharing lifecycle
var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrUsernameTaken        = errors.New("username already taken")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserNotFound         = errors.New("user not found")
	ErrAlreadyShared        = errors.New("workspace is already shared with this user")
	ErrShareNotPending      = errors.New("invitation has already been responded to")
	ErrInvalidShareResponse = errors.New("response must be accept or decline")
	ErrInvalidTimezone      = errors.New("unknown timezone")
)

// ActiveTaskError rejects a start while another timer is running. It carries
// the conflicting task so the caller can surface it.
type ActiveTaskError struct {
	Active ActiveTask
}

func (e *ActiveTaskError) Error() string {
	return fmt.Sprintf("another task is already active: %s (%s)", e.Active.TaskName, e.Active.TaskID)
}

// NewActiveTaskError builds an ActiveTaskError for the given task
func NewActiveTaskError(taskID uuid.UUID, taskName string) *ActiveTaskError {
	return &ActiveTaskError{Active: ActiveTask{TaskID: taskID, TaskName: taskName}}
}
