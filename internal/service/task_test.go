package service

import (
	"context"
	"testing"

	"github.com/focusflowhq/backend/internal/clock"
	"github.com/focusflowhq/backend/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateTask_DefaultsPriorityToOne(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	goalID := uuid.New()

	taskRepo := new(MockTaskRepository)
	taskRepo.On("Create", ctx, mock.MatchedBy(func(task *domain.Task) bool {
		return task.Priority == 1
	})).Return(nil)

	svc := NewTaskService(taskRepo, clock.System())
	task, err := svc.Create(ctx, userID, domain.TaskCreate{
		GoalID: goalID,
		Name:   "write report",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, task.Priority)
	taskRepo.AssertExpectations(t)
}

func TestCreateTask_KeepsExplicitPriority(t *testing.T) {
	ctx := context.Background()

	taskRepo := new(MockTaskRepository)
	taskRepo.On("Create", ctx, mock.AnythingOfType("*domain.Task")).Return(nil)

	svc := NewTaskService(taskRepo, clock.System())
	task, err := svc.Create(ctx, uuid.New(), domain.TaskCreate{
		GoalID:   uuid.New(),
		Name:     "review",
		Priority: 7,
	})

	require.NoError(t, err)
	assert.Equal(t, 7, task.Priority)
}

func TestCreateTask_StartsPending(t *testing.T) {
	ctx := context.Background()

	taskRepo := new(MockTaskRepository)
	taskRepo.On("Create", ctx, mock.AnythingOfType("*domain.Task")).Return(nil)

	svc := NewTaskService(taskRepo, clock.System())
	task, err := svc.Create(ctx, uuid.New(), domain.TaskCreate{
		GoalID: uuid.New(),
		Name:   "plan sprint",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusPending, task.Status)
}
