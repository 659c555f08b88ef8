package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/redact"
	"github.com/phrazzld/tasks-api/internal/store"
)

// CreateTaskInput carries the fields a client supplies for a new task.
type CreateTaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TaskService manages the tasks owned by a user.
// Every method is scoped by user.ID.
type TaskService interface {
	// GetTasks lists the user's tasks matching filter, in creation order.
	GetTasks(ctx context.Context, filter domain.TaskFilter, user *domain.User) ([]*domain.Task, error)

	// GetTaskByID returns one of the user's tasks, or ErrTaskNotFound.
	GetTaskByID(ctx context.Context, id uuid.UUID, user *domain.User) (*domain.Task, error)

	// CreateTask creates an OPEN task owned by user.
	CreateTask(ctx context.Context, input CreateTaskInput, user *domain.User) (*domain.Task, error)

	// DeleteTask removes one of the user's tasks, or returns ErrTaskNotFound.
	DeleteTask(ctx context.Context, id uuid.UUID, user *domain.User) error

	// UpdateTaskStatus moves one of the user's tasks to status.
	// Any status may follow any other.
	UpdateTaskStatus(ctx context.Context, id uuid.UUID, status domain.TaskStatus, user *domain.User) (*domain.Task, error)
}

type taskServiceImpl struct {
	tasks  store.TaskStore
	logger *slog.Logger
}

// NewTaskService creates a TaskService.
func NewTaskService(tasks store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if tasks == nil {
		return nil, errors.New("task store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_service")),
	}, nil
}

// GetTasks implements TaskService.GetTasks.
func (s *taskServiceImpl) GetTasks(
	ctx context.Context,
	filter domain.TaskFilter,
	user *domain.User,
) ([]*domain.Task, error) {
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	if filter.Status != nil && !filter.Status.Valid() {
		return nil, domain.NewValidationError("status", "must be one of OPEN, IN_PROGRESS, DONE", domain.ErrInvalidTaskStatus)
	}

	tasks, err := s.tasks.List(ctx, user.ID, filter)
	if err != nil {
		log.Error("failed to get tasks",
			slog.String("username", user.Username),
			slog.String("filter", dtoJSON(filter)),
			redact.Attr(err),
			errOrigin(err))
		return nil, ErrInternal
	}

	return tasks, nil
}

// GetTaskByID implements TaskService.GetTaskByID.
func (s *taskServiceImpl) GetTaskByID(ctx context.Context, id uuid.UUID, user *domain.User) (*domain.Task, error) {
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.tasks.GetByID(ctx, id, user.ID)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		log.Error("failed to get task",
			slog.String("username", user.Username),
			slog.String("task_id", id.String()),
			redact.Attr(err),
			errOrigin(err))
		return nil, ErrInternal
	}

	return task, nil
}

// CreateTask implements TaskService.CreateTask.
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	input CreateTaskInput,
	user *domain.User,
) (*domain.Task, error) {
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(user.ID, input.Title, input.Description)
	if err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		log.Error("failed to create task",
			slog.String("username", user.Username),
			slog.String("task", dtoJSON(input)),
			redact.Attr(err),
			errOrigin(err))
		return nil, ErrInternal
	}

	log.Debug("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", user.ID.String()))
	return task, nil
}

// DeleteTask implements TaskService.DeleteTask.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id uuid.UUID, user *domain.User) error {
	if user == nil {
		return domain.ErrUnauthorized
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.tasks.Delete(ctx, id, user.ID); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return ErrTaskNotFound
		}
		log.Error("failed to delete task",
			slog.String("username", user.Username),
			slog.String("task_id", id.String()),
			redact.Attr(err),
			errOrigin(err))
		return ErrInternal
	}

	log.Debug("task deleted",
		slog.String("task_id", id.String()),
		slog.String("user_id", user.ID.String()))
	return nil
}

// UpdateTaskStatus implements TaskService.UpdateTaskStatus.
func (s *taskServiceImpl) UpdateTaskStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.TaskStatus,
	user *domain.User,
) (*domain.Task, error) {
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := domain.ParseTaskStatus(string(status)); err != nil {
		return nil, err
	}

	task, err := s.GetTaskByID(ctx, id, user)
	if err != nil {
		return nil, err
	}

	if err := task.SetStatus(status); err != nil {
		return nil, err
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		log.Error("failed to update task status",
			slog.String("username", user.Username),
			slog.String("task_id", id.String()),
			slog.String("status", string(status)),
			redact.Attr(err),
			errOrigin(err))
		return nil, ErrInternal
	}

	log.Debug("task status updated",
		slog.String("task_id", id.String()),
		slog.String("status", string(status)))
	return task, nil
}

// dtoJSON renders a request DTO for a log line.
func dtoJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "<unencodable>"
	}
	return string(b)
}
