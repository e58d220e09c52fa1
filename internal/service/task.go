package service

import (
	"context"

	"github.com/focusflowhq/backend/internal/clock"
	"github.com/focusflowhq/backend/internal/domain"
	"github.com/google/uuid"
)

// TaskRepository is the task access the service needs
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	ListWithTracking(ctx context.Context, userID uuid.UUID, goalID *uuid.UUID) ([]domain.TaskWithTracking, error)
	Update(ctx context.Context, id uuid.UUID, update *domain.TaskUpdate) (*domain.Task, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// TaskService handles task operations
type TaskService struct {
	taskRepo TaskRepository
	clock    clock.Clock
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo TaskRepository, clk clock.Clock) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		clock:    clk,
	}
}

// Create creates a new task owned by the user
func (s *TaskService) Create(ctx context.Context, userID uuid.UUID, input domain.TaskCreate) (*domain.Task, error) {
	// An omitted priority decodes to 0; the valid range starts at 1
	priority := input.Priority
	if priority == 0 {
		priority = 1
	}

	now := s.clock.Now()
	task := &domain.Task{
		ID:          uuid.New(),
		UserID:      userID,
		GoalID:      input.GoalID,
		Name:        input.Name,
		Description: input.Description,
		Status:      domain.TaskStatusPending,
		TimeBudget:  input.TimeBudget,
		Deadline:    input.Deadline,
		Priority:    priority,
		IsRecurring: input.IsRecurring,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// Get retrieves a task. Callers are expected to have authorized access
// through the permission chain.
func (s *TaskService) Get(ctx context.Context, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.taskRepo.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domain.ErrResourceNotFound
	}
	return task, nil
}

// ListWithTracking retrieves the user's tasks with any open tracking record
// attached, done tasks last. Optionally narrowed to one goal.
func (s *TaskService) ListWithTracking(ctx context.Context, userID uuid.UUID, goalID *uuid.UUID) ([]domain.TaskWithTracking, error) {
	return s.taskRepo.ListWithTracking(ctx, userID, goalID)
}

// Update updates a task
func (s *TaskService) Update(ctx context.Context, taskID uuid.UUID, input domain.TaskUpdate) (*domain.Task, error) {
	task, err := s.taskRepo.Update(ctx, taskID, &input)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domain.ErrResourceNotFound
	}
	return task, nil
}

// Delete deletes a task; its tracking records cascade
func (s *TaskService) Delete(ctx context.Context, taskID uuid.UUID) error {
	deleted, err := s.taskRepo.Delete(ctx, taskID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrResourceNotFound
	}
	return nil
}
