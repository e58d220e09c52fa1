package access

import (
	"context"

	"github.com/focusflowhq/backend/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockStore mocks the resolver's Store interface
type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetWorkspaceRef(ctx context.Context, id uuid.UUID) (*Ref, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Ref), args.Error(1)
}

func (m *MockStore) GetGoalRef(ctx context.Context, id uuid.UUID) (*Ref, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Ref), args.Error(1)
}

func (m *MockStore) GetTaskRef(ctx context.Context, id uuid.UUID) (*Ref, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Ref), args.Error(1)
}

func (m *MockStore) GetTrackingRecordTask(ctx context.Context, id uuid.UUID) (*uuid.UUID, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*uuid.UUID), args.Error(1)
}

func (m *MockStore) ListShares(ctx context.Context, workspaceID, userID uuid.UUID) ([]domain.WorkspaceShare, error) {
	args := m.Called(ctx, workspaceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkspaceShare), args.Error(1)
}

func (m *MockStore) GetPermission(ctx context.Context, userID, resourceID uuid.UUID, resourceType string) (*domain.Permission, error) {
	args := m.Called(ctx, userID, resourceID, resourceType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Permission), args.Error(1)
}
