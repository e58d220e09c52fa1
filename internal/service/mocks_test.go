package service

import (
	"context"
	"time"

	"github.com/focusflowhq/backend/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockTrackingRepository mocks TrackingRepository
type MockTrackingRepository struct {
	mock.Mock
}

func (m *MockTrackingRepository) Insert(ctx context.Context, rec *domain.TrackingRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockTrackingRepository) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*domain.TrackingRecord, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrackingRecord), args.Error(1)
}

func (m *MockTrackingRepository) GetActiveForUser(ctx context.Context, userID uuid.UUID) (*domain.ActiveTask, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActiveTask), args.Error(1)
}

func (m *MockTrackingRepository) Stop(ctx context.Context, id uuid.UUID, endTime time.Time, duration int64) (*domain.TrackingRecord, error) {
	args := m.Called(ctx, id, endTime, duration)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrackingRecord), args.Error(1)
}

func (m *MockTrackingRepository) CloseOpenForTask(ctx context.Context, taskID uuid.UUID, at time.Time, exclude *uuid.UUID) error {
	args := m.Called(ctx, taskID, at, exclude)
	return args.Error(0)
}

func (m *MockTrackingRepository) Summarize(ctx context.Context, userID uuid.UUID, from, to *time.Time, filter domain.SummaryFilter) ([]domain.TaskSummary, error) {
	args := m.Called(ctx, userID, from, to, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaskSummary), args.Error(1)
}

// MockTaskRepository mocks TaskRepository
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) ListWithTracking(ctx context.Context, userID uuid.UUID, goalID *uuid.UUID) ([]domain.TaskWithTracking, error) {
	args := m.Called(ctx, userID, goalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaskWithTracking), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, id uuid.UUID, update *domain.TaskUpdate) (*domain.Task, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockTimezoneRepository mocks TimezoneRepository
type MockTimezoneRepository struct {
	mock.Mock
}

func (m *MockTimezoneRepository) GetTimezone(ctx context.Context, id uuid.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

// MockShareRepository mocks ShareRepository
type MockShareRepository struct {
	mock.Mock
}

func (m *MockShareRepository) Create(ctx context.Context, share *domain.WorkspaceShare) error {
	args := m.Called(ctx, share)
	return args.Error(0)
}

func (m *MockShareRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.WorkspaceShare, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkspaceShare), args.Error(1)
}

func (m *MockShareRepository) GetForWorkspaceAndUser(ctx context.Context, workspaceID, userID uuid.UUID) (*domain.WorkspaceShare, error) {
	args := m.Called(ctx, workspaceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkspaceShare), args.Error(1)
}

func (m *MockShareRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*domain.WorkspaceShare, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkspaceShare), args.Error(1)
}

func (m *MockShareRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockShareRepository) ListSharedUsers(ctx context.Context, workspaceID uuid.UUID) ([]domain.SharedUser, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SharedUser), args.Error(1)
}

func (m *MockShareRepository) ListInvitationsForUser(ctx context.Context, userID uuid.UUID) ([]domain.Invitation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invitation), args.Error(1)
}

// MockPermissionRepository mocks PermissionRepository
type MockPermissionRepository struct {
	mock.Mock
}

func (m *MockPermissionRepository) Create(ctx context.Context, perm *domain.Permission) error {
	args := m.Called(ctx, perm)
	return args.Error(0)
}

func (m *MockPermissionRepository) Upsert(ctx context.Context, perm *domain.Permission) (*domain.Permission, error) {
	args := m.Called(ctx, perm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Permission), args.Error(1)
}

func (m *MockPermissionRepository) DeleteWorkspaceLevel(ctx context.Context, userID, workspaceID uuid.UUID) error {
	args := m.Called(ctx, userID, workspaceID)
	return args.Error(0)
}

func (m *MockPermissionRepository) DeleteAllInWorkspace(ctx context.Context, userID, workspaceID uuid.UUID) error {
	args := m.Called(ctx, userID, workspaceID)
	return args.Error(0)
}

// MockShareWorkspaceRepository mocks ShareWorkspaceRepository
type MockShareWorkspaceRepository struct {
	mock.Mock
}

func (m *MockShareWorkspaceRepository) IsOwner(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, workspaceID, userID)
	return args.Bool(0), args.Error(1)
}

// MockShareUserRepository mocks ShareUserRepository
type MockShareUserRepository struct {
	mock.Mock
}

func (m *MockShareUserRepository) GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockUserRepository mocks UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UpdateTimezone(ctx context.Context, id uuid.UUID, timezone string) (*domain.User, error) {
	args := m.Called(ctx, id, timezone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockGoalTaskRepository mocks GoalTaskRepository
type MockGoalTaskRepository struct {
	mock.Mock
}

func (m *MockGoalTaskRepository) SumBudgetByGoal(ctx context.Context, goalID, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, goalID, userID)
	return args.Int(0), args.Error(1)
}
