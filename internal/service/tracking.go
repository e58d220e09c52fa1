package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/focusflowhq/backend/internal/clock"
	"github.com/focusflowhq/backend/internal/domain"
	"github.com/google/uuid"
)

// TrackingRepository is the tracking record access the engine needs
type TrackingRepository interface {
	Insert(ctx context.Context, rec *domain.TrackingRecord) error
	GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*domain.TrackingRecord, error)
	GetActiveForUser(ctx context.Context, userID uuid.UUID) (*domain.ActiveTask, error)
	Stop(ctx context.Context, id uuid.UUID, endTime time.Time, duration int64) (*domain.TrackingRecord, error)
	CloseOpenForTask(ctx context.Context, taskID uuid.UUID, at time.Time, exclude *uuid.UUID) error
	Summarize(ctx context.Context, userID uuid.UUID, from, to *time.Time, filter domain.SummaryFilter) ([]domain.TaskSummary, error)
}

// TimezoneRepository resolves a user's stored IANA timezone
type TimezoneRepository interface {
	GetTimezone(ctx context.Context, id uuid.UUID) (string, error)
}

// TrackingService enforces the tracking invariants: at most one open record
// per user across all tasks, non-negative floor-second durations, and
// timezone-correct summary bucketing.
type TrackingService struct {
	trackingRepo TrackingRepository
	userRepo     TimezoneRepository
	clock        clock.Clock
}

// NewTrackingService creates a new tracking service
func NewTrackingService(trackingRepo TrackingRepository, userRepo TimezoneRepository, clk clock.Clock) *TrackingService {
	return &TrackingService{
		trackingRepo: trackingRepo,
		userRepo:     userRepo,
		clock:        clk,
	}
}

func (s *TrackingService) userLocation(ctx context.Context, userID uuid.UUID) (*time.Location, error) {
	tz, err := s.userRepo.GetTimezone(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user timezone: %w", err)
	}
	return loadLocation(tz), nil
}

// Start opens a tracking record for the task. The caller must already be
// authorized for submitRecord on the task. Rejects with ActiveTaskError while
// any other record of the user is open, whatever task it belongs to.
func (s *TrackingService) Start(ctx context.Context, userID, taskID uuid.UUID, startTime *time.Time) (*domain.TrackingRecord, error) {
	loc, err := s.userLocation(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	effectiveStart := now.In(loc)
	if startTime != nil {
		effectiveStart = *startTime
	}

	active, err := s.trackingRepo.GetActiveForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check active record: %w", err)
	}
	if active != nil {
		return nil, &domain.ActiveTaskError{Active: *active}
	}

	// Should be a no-op given the check above; clears duplicate-open-record
	// anomalies for this task before inserting.
	if err := s.trackingRepo.CloseOpenForTask(ctx, taskID, now, nil); err != nil {
		return nil, err
	}

	rec := &domain.TrackingRecord{
		ID:        uuid.New(),
		TaskID:    taskID,
		UserID:    userID,
		StartTime: effectiveStart,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.trackingRepo.Insert(ctx, rec); err != nil {
		if errors.Is(err, domain.ErrOpenRecordExists) {
			// A concurrent start won the race; report its task when we can
			// still see it.
			if active, activeErr := s.trackingRepo.GetActiveForUser(ctx, userID); activeErr == nil && active != nil {
				return nil, &domain.ActiveTaskError{Active: *active}
			}
			return nil, err
		}
		return nil, err
	}

	return rec, nil
}

// Stop closes the record, computing its duration as whole elapsed seconds.
// Stopping an already-stopped record is rejected, never silently ignored, so
// the stored duration can never be overwritten.
func (s *TrackingService) Stop(ctx context.Context, userID, recordID uuid.UUID, stopTime *time.Time) (*domain.TrackingRecord, error) {
	rec, err := s.trackingRepo.GetByIDForUser(ctx, recordID, userID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrRecordNotFound
	}
	if rec.EndTime != nil {
		return nil, domain.ErrAlreadyStopped
	}

	now := s.clock.Now()
	effectiveStop := now
	if stopTime != nil {
		effectiveStop = *stopTime
	}

	if effectiveStop.Before(rec.StartTime) {
		return nil, domain.ErrInvalidTimeRange
	}

	duration := int64(effectiveStop.Sub(rec.StartTime) / time.Second)

	updated, err := s.trackingRepo.Stop(ctx, recordID, effectiveStop, duration)
	if err != nil {
		return nil, err
	}

	// Close any stray open records for the same task, excluding the one just
	// stopped.
	if err := s.trackingRepo.CloseOpenForTask(ctx, rec.TaskID, now, &recordID); err != nil {
		return nil, err
	}

	return updated, nil
}

// RecordManual inserts a fully specified closed record, bypassing the live
// timer machinery. Backfilled intervals are stored verbatim and are not
// checked for overlap against existing records.
func (s *TrackingService) RecordManual(ctx context.Context, userID, taskID uuid.UUID, input domain.ManualRecordCreate) (*domain.TrackingRecord, error) {
	if input.StopTime.Before(input.StartTime) {
		return nil, domain.ErrInvalidTimeRange
	}

	now := s.clock.Now()
	stop := input.StopTime
	duration := input.Duration
	rec := &domain.TrackingRecord{
		ID:        uuid.New(),
		TaskID:    taskID,
		UserID:    userID,
		StartTime: input.StartTime,
		EndTime:   &stop,
		Duration:  &duration,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.trackingRepo.Insert(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

// Summary aggregates the user's stopped records per task name. For day, month
// and year the window is the current bucket in the user's timezone; total sums
// everything. The result covers tasks the user owns plus tasks in workspaces
// shared with the user, merged by task name.
func (s *TrackingService) Summary(ctx context.Context, userID uuid.UUID, period string, filter domain.SummaryFilter) ([]domain.TaskSummary, error) {
	switch period {
	case domain.PeriodDay, domain.PeriodMonth, domain.PeriodYear, domain.PeriodTotal:
	default:
		return nil, domain.ErrInvalidPeriod
	}

	if period == domain.PeriodTotal {
		rows, err := s.trackingRepo.Summarize(ctx, userID, nil, nil, filter)
		if err != nil {
			return nil, err
		}
		return mergeByTaskName(rows), nil
	}

	loc, err := s.userLocation(ctx, userID)
	if err != nil {
		return nil, err
	}

	from, to, err := PeriodBounds(period, s.clock.Now(), loc)
	if err != nil {
		return nil, err
	}

	rows, err := s.trackingRepo.Summarize(ctx, userID, &from, &to, filter)
	if err != nil {
		return nil, err
	}
	rows = mergeByTaskName(rows)

	bucket := from
	for i := range rows {
		rows[i].Period = &bucket
	}

	return rows, nil
}

// mergeByTaskName folds rows sharing a task name into one summed entry,
// keeping first-seen order. Summaries are keyed by name alone: owned tasks and
// tasks in shared workspaces that happen to share a name count as one.
func mergeByTaskName(rows []domain.TaskSummary) []domain.TaskSummary {
	merged := make([]domain.TaskSummary, 0, len(rows))
	index := make(map[string]int, len(rows))
	for _, row := range rows {
		if i, ok := index[row.TaskName]; ok {
			merged[i].TotalDurationSeconds += row.TotalDurationSeconds
			continue
		}
		index[row.TaskName] = len(merged)
		merged = append(merged, row)
	}
	return merged
}
