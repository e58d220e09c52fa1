package service

import (
	"context"
	"testing"

	"github.com/focusflowhq/backend/internal/clock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyBudget_WithinADay(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	goalID := uuid.New()

	taskRepo := new(MockGoalTaskRepository)
	taskRepo.On("SumBudgetByGoal", ctx, goalID, userID).Return(480, nil)

	svc := NewGoalService(nil, taskRepo, nil, clock.System())
	budget, err := svc.DailyBudget(ctx, userID, goalID)

	require.NoError(t, err)
	assert.Equal(t, 480, budget.TotalTimeBudgetMinutes)
	assert.InDelta(t, 8.0, budget.TotalTimeBudgetHours, 0.0001)
	assert.Empty(t, budget.Warning)
}

func TestDailyBudget_WarnsPast24Hours(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	goalID := uuid.New()

	taskRepo := new(MockGoalTaskRepository)
	taskRepo.On("SumBudgetByGoal", ctx, goalID, userID).Return(25 * 60, nil)

	svc := NewGoalService(nil, taskRepo, nil, clock.System())
	budget, err := svc.DailyBudget(ctx, userID, goalID)

	require.NoError(t, err)
	assert.Equal(t, "Total time budget exceeds 24 hours for this goal.", budget.Warning)
}

func TestDailyBudget_Exactly24HoursIsFine(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	goalID := uuid.New()

	taskRepo := new(MockGoalTaskRepository)
	taskRepo.On("SumBudgetByGoal", ctx, goalID, userID).Return(24 * 60, nil)

	svc := NewGoalService(nil, taskRepo, nil, clock.System())
	budget, err := svc.DailyBudget(ctx, userID, goalID)

	require.NoError(t, err)
	assert.Empty(t, budget.Warning)
}
