package service

import (
	"context"
	"fmt"
	"time"

	"github.com/focusflowhq/backend/internal/clock"
	"github.com/focusflowhq/backend/internal/domain"
	"github.com/google/uuid"
)

// GoalRepository is the goal access the service needs
type GoalRepository interface {
	Create(ctx context.Context, goal *domain.Goal) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error)
	ListOverviewByUser(ctx context.Context, userID uuid.UUID, workspaceID *uuid.UUID, dayStart, dayEnd time.Time) ([]domain.GoalOverviewRow, error)
	Update(ctx context.Context, id uuid.UUID, update *domain.GoalUpdate) (*domain.Goal, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// GoalTaskRepository is the task access the goal service needs
type GoalTaskRepository interface {
	SumBudgetByGoal(ctx context.Context, goalID, userID uuid.UUID) (int, error)
}

// GoalService handles goal operations
type GoalService struct {
	goalRepo GoalRepository
	taskRepo GoalTaskRepository
	userRepo TimezoneRepository
	clock    clock.Clock
}

// NewGoalService creates a new goal service
func NewGoalService(goalRepo GoalRepository, taskRepo GoalTaskRepository, userRepo TimezoneRepository, clk clock.Clock) *GoalService {
	return &GoalService{
		goalRepo: goalRepo,
		taskRepo: taskRepo,
		userRepo: userRepo,
		clock:    clk,
	}
}

// Create creates a new goal owned by the user
func (s *GoalService) Create(ctx context.Context, userID uuid.UUID, input domain.GoalCreate) (*domain.Goal, error) {
	now := s.clock.Now()
	goal := &domain.Goal{
		ID:          uuid.New(),
		UserID:      userID,
		WorkspaceID: input.WorkspaceID,
		Name:        input.Name,
		Description: input.Description,
		Deadline:    input.Deadline,
		Status:      domain.GoalStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.goalRepo.Create(ctx, goal); err != nil {
		return nil, err
	}

	return goal, nil
}

// GetByID retrieves a goal. Callers are expected to have authorized access
// through the permission chain.
func (s *GoalService) GetByID(ctx context.Context, goalID uuid.UUID) (*domain.Goal, error) {
	goal, err := s.goalRepo.GetByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, domain.ErrResourceNotFound
	}
	return goal, nil
}

// ListByUser retrieves the user's goals with task counts, running markers and
// progress, optionally narrowed to one workspace
func (s *GoalService) ListByUser(ctx context.Context, userID uuid.UUID, workspaceID *uuid.UUID) ([]domain.GoalOverview, error) {
	tz, err := s.userRepo.GetTimezone(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user timezone: %w", err)
	}
	dayStart, dayEnd, err := PeriodBounds(domain.PeriodDay, s.clock.Now(), loadLocation(tz))
	if err != nil {
		return nil, err
	}

	rows, err := s.goalRepo.ListOverviewByUser(ctx, userID, workspaceID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	result := make([]domain.GoalOverview, 0, len(rows))
	for _, row := range rows {
		result = append(result, domain.GoalOverview{
			Goal:           row.Goal,
			TaskCount:      row.TaskCount,
			TotalProgress:  progressPercent(row.DoneBudgetMinutes, row.BudgetMinutes, row.TrackedTodayMinutes),
			HasRunningTask: row.HasRunningTask,
		})
	}

	return result, nil
}

// Update updates a goal
func (s *GoalService) Update(ctx context.Context, goalID uuid.UUID, input domain.GoalUpdate) (*domain.Goal, error) {
	goal, err := s.goalRepo.Update(ctx, goalID, &input)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, domain.ErrResourceNotFound
	}
	return goal, nil
}

// Delete deletes a goal; tasks and tracking records cascade
func (s *GoalService) Delete(ctx context.Context, goalID uuid.UUID) error {
	deleted, err := s.goalRepo.Delete(ctx, goalID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrResourceNotFound
	}
	return nil
}

// DailyBudget sums the time budgets of a goal's tasks and flags totals that
// cannot fit into one day
func (s *GoalService) DailyBudget(ctx context.Context, userID, goalID uuid.UUID) (*domain.GoalBudget, error) {
	minutes, err := s.taskRepo.SumBudgetByGoal(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}

	budget := &domain.GoalBudget{
		GoalID:                 goalID,
		TotalTimeBudgetMinutes: minutes,
		TotalTimeBudgetHours:   float64(minutes) / 60,
	}
	if budget.TotalTimeBudgetHours > 24 {
		budget.Warning = "Total time budget exceeds 24 hours for this goal."
	}

	return budget, nil
}
