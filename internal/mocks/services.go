package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/stretchr/testify/mock"
)

// MockAuthService mocks service.AuthService.
type MockAuthService struct {
	mock.Mock
}

var _ service.AuthService = (*MockAuthService)(nil)

// SignUp implements service.AuthService.
func (m *MockAuthService) SignUp(ctx context.Context, creds service.Credentials) error {
	args := m.Called(ctx, creds)
	return args.Error(0)
}

// SignIn implements service.AuthService.
func (m *MockAuthService) SignIn(ctx context.Context, creds service.Credentials) (*service.SignInResult, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SignInResult), args.Error(1)
}

// Authenticate implements service.AuthService.
func (m *MockAuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockTaskService mocks service.TaskService.
type MockTaskService struct {
	mock.Mock
}

var _ service.TaskService = (*MockTaskService)(nil)

// GetTasks implements service.TaskService.
func (m *MockTaskService) GetTasks(
	ctx context.Context,
	filter domain.TaskFilter,
	user *domain.User,
) ([]*domain.Task, error) {
	args := m.Called(ctx, filter, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Task), args.Error(1)
}

// GetTaskByID implements service.TaskService.
func (m *MockTaskService) GetTaskByID(ctx context.Context, id uuid.UUID, user *domain.User) (*domain.Task, error) {
	args := m.Called(ctx, id, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

// CreateTask implements service.TaskService.
func (m *MockTaskService) CreateTask(
	ctx context.Context,
	input service.CreateTaskInput,
	user *domain.User,
) (*domain.Task, error) {
	args := m.Called(ctx, input, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

// DeleteTask implements service.TaskService.
func (m *MockTaskService) DeleteTask(ctx context.Context, id uuid.UUID, user *domain.User) error {
	args := m.Called(ctx, id, user)
	return args.Error(0)
}

// UpdateTaskStatus implements service.TaskService.
func (m *MockTaskService) UpdateTaskStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.TaskStatus,
	user *domain.User,
) (*domain.Task, error) {
	args := m.Called(ctx, id, status, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}
