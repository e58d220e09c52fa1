package service

import (
	"context"
	"fmt"
	"time"

	"github.com/focusflowhq/backend/internal/clock"
	"github.com/focusflowhq/backend/internal/domain"
	"github.com/google/uuid"
)

// WorkspaceRepository is the workspace access the service needs
type WorkspaceRepository interface {
	Create(ctx context.Context, workspace *domain.Workspace) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error)
	ListOverviewByUser(ctx context.Context, userID uuid.UUID, dayStart, dayEnd time.Time) ([]domain.WorkspaceOverviewRow, error)
	Update(ctx context.Context, id uuid.UUID, update *domain.WorkspaceUpdate) (*domain.Workspace, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	ListGroupNames(ctx context.Context, userID uuid.UUID) ([]string, error)
}

// WorkspaceService handles workspace operations
type WorkspaceService struct {
	workspaceRepo WorkspaceRepository
	userRepo      TimezoneRepository
	clock         clock.Clock
}

// NewWorkspaceService creates a new workspace service
func NewWorkspaceService(workspaceRepo WorkspaceRepository, userRepo TimezoneRepository, clk clock.Clock) *WorkspaceService {
	return &WorkspaceService{
		workspaceRepo: workspaceRepo,
		userRepo:      userRepo,
		clock:         clk,
	}
}

// Create creates a new workspace owned by the user
func (s *WorkspaceService) Create(ctx context.Context, userID uuid.UUID, input domain.WorkspaceCreate) (*domain.Workspace, error) {
	now := s.clock.Now()
	workspace := &domain.Workspace{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		GroupName:   input.GroupName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.workspaceRepo.Create(ctx, workspace); err != nil {
		return nil, err
	}

	return workspace, nil
}

// GetByID retrieves a workspace. Callers are expected to have authorized
// access through the permission chain.
func (s *WorkspaceService) GetByID(ctx context.Context, workspaceID uuid.UUID) (*domain.Workspace, error) {
	workspace, err := s.workspaceRepo.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if workspace == nil {
		return nil, domain.ErrResourceNotFound
	}
	return workspace, nil
}

// ListByUser retrieves the user's workspaces with aggregate progress. Today's
// window for the progress credit is computed in the user's timezone.
func (s *WorkspaceService) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.WorkspaceOverview, error) {
	tz, err := s.userRepo.GetTimezone(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user timezone: %w", err)
	}
	dayStart, dayEnd, err := PeriodBounds(domain.PeriodDay, s.clock.Now(), loadLocation(tz))
	if err != nil {
		return nil, err
	}

	rows, err := s.workspaceRepo.ListOverviewByUser(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	result := make([]domain.WorkspaceOverview, 0, len(rows))
	for _, row := range rows {
		result = append(result, domain.WorkspaceOverview{
			Workspace:     row.Workspace,
			GoalCount:     row.GoalCount,
			TaskCount:     row.TaskCount,
			TotalProgress: progressPercent(row.DoneBudgetMinutes, row.BudgetMinutes, row.TrackedTodayMinutes),
		})
	}

	return result, nil
}

// Update updates a workspace
func (s *WorkspaceService) Update(ctx context.Context, workspaceID uuid.UUID, input domain.WorkspaceUpdate) (*domain.Workspace, error) {
	workspace, err := s.workspaceRepo.Update(ctx, workspaceID, &input)
	if err != nil {
		return nil, err
	}
	if workspace == nil {
		return nil, domain.ErrResourceNotFound
	}
	return workspace, nil
}

// Delete deletes a workspace; contained goals, tasks, tracking records,
// shares and permissions go with it
func (s *WorkspaceService) Delete(ctx context.Context, workspaceID uuid.UUID) error {
	deleted, err := s.workspaceRepo.Delete(ctx, workspaceID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrResourceNotFound
	}
	return nil
}

// GroupNames returns the distinct group labels across the user's workspaces
func (s *WorkspaceService) GroupNames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return s.workspaceRepo.ListGroupNames(ctx, userID)
}
