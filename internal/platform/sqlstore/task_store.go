package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

const tasksTable = "tasks"

var taskColumns = []string{
	"id", "title", "description", "status", "user_id", "created_at", "updated_at",
}

// likeEscaper makes LIKE wildcards in a search term match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// TaskStore implements the store.TaskStore interface using a SQL database.
type TaskStore struct {
	db      store.DBTX
	dialect Dialect
	logger  *slog.Logger
}

// NewTaskStore creates a new SQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that is managed by the caller.
// If logger is nil, a default logger will be used.
func NewTaskStore(db store.DBTX, dialect Dialect, logger *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if dialect == nil {
		panic("dialect cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		db:      db,
		dialect: dialect,
		logger:  logger.With(slog.String("component", "task_store")),
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// Create implements store.TaskStore.Create.
// Returns store.ErrInvalidEntity if the owner does not exist.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query, args, err := sq.Insert(tasksTable).
		Columns(taskColumns...).
		Values(
			task.ID,
			task.Title,
			task.Description,
			string(task.Status),
			task.UserID,
			task.CreatedAt.UTC(),
			task.UpdatedAt.UTC(),
		).
		PlaceholderFormat(s.dialect.Placeholder()).
		ToSql()
	if err != nil {
		return store.NewStoreError("task", "create", "failed to build query", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		mapped := s.dialect.MapError(err)
		if errors.Is(mapped, store.ErrInvalidEntity) {
			log.Warn("constraint violation during task creation",
				slog.String("error", err.Error()),
				slog.String("task_id", task.ID.String()),
				slog.String("user_id", task.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found", store.ErrInvalidEntity, task.UserID)
		}

		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()),
			slog.String("user_id", task.UserID.String()))
		return store.NewStoreError("task", "create", "failed to insert task", mapped)
	}

	log.Debug("task created successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", task.UserID.String()))
	return nil
}

// GetByID implements store.TaskStore.GetByID.
// A task owned by someone else is reported exactly like a missing one.
func (s *TaskStore) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := sq.Select(taskColumns...).
		From(tasksTable).
		Where(sq.Eq{"id": id}).
		Where(sq.Eq{"user_id": userID}).
		PlaceholderFormat(s.dialect.Placeholder()).
		ToSql()
	if err != nil {
		return nil, store.NewStoreError("task", "get", "failed to build query", err)
	}

	task, err := scanTask(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found",
				slog.String("task_id", id.String()),
				slog.String("user_id", userID.String()))
			return nil, store.ErrTaskNotFound
		}

		log.Error("failed to get task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, store.NewStoreError("task", "get", "failed to query task", s.dialect.MapError(err))
	}

	return task, nil
}

// List implements store.TaskStore.List.
func (s *TaskStore) List(
	ctx context.Context,
	userID uuid.UUID,
	filter domain.TaskFilter,
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := s.listQuery(userID, filter)
	if err != nil {
		return nil, store.NewStoreError("task", "list", "failed to build query", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, store.NewStoreError("task", "list", "failed to query tasks", s.dialect.MapError(err))
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("task", "list", "failed to scan task", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", "failed to iterate tasks", s.dialect.MapError(err))
	}

	log.Debug("listed tasks",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// listQuery translates a filter into a SELECT scoped to userID.
// Status is an exact match; search is a case-insensitive literal substring
// match against title or description.
func (s *TaskStore) listQuery(userID uuid.UUID, filter domain.TaskFilter) (string, []interface{}, error) {
	q := sq.Select(taskColumns...).
		From(tasksTable).
		Where(sq.Eq{"user_id": userID})

	if filter.Status != nil {
		q = q.Where(sq.Eq{"status": string(*filter.Status)})
	}

	if filter.Search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(filter.Search)) + "%"
		q = q.Where(sq.Or{
			sq.Expr(s.dialect.Lower("title")+` LIKE ? ESCAPE '\'`, pattern),
			sq.Expr(s.dialect.Lower("description")+` LIKE ? ESCAPE '\'`, pattern),
		})
	}

	return q.OrderBy("id ASC").
		PlaceholderFormat(s.dialect.Placeholder()).
		ToSql()
}

// Update implements store.TaskStore.Update.
// Only status and updated_at are writable.
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query, args, err := sq.Update(tasksTable).
		Set("status", string(task.Status)).
		Set("updated_at", task.UpdatedAt.UTC()).
		Where(sq.Eq{"id": task.ID}).
		Where(sq.Eq{"user_id": task.UserID}).
		PlaceholderFormat(s.dialect.Placeholder()).
		ToSql()
	if err != nil {
		return store.NewStoreError("task", "update", "failed to build query", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return store.NewStoreError("task", "update", "failed to update task", s.dialect.MapError(err))
	}

	if err := checkRowsAffected(result); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("task not found for update", slog.String("task_id", task.ID.String()))
			return store.ErrTaskNotFound
		}
		return store.NewStoreError("task", "update", "failed to read affected rows", err)
	}

	log.Debug("task updated successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("status", string(task.Status)))
	return nil
}

// Delete implements store.TaskStore.Delete.
func (s *TaskStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := sq.Delete(tasksTable).
		Where(sq.Eq{"id": id}).
		Where(sq.Eq{"user_id": userID}).
		PlaceholderFormat(s.dialect.Placeholder()).
		ToSql()
	if err != nil {
		return store.NewStoreError("task", "delete", "failed to build query", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return store.NewStoreError("task", "delete", "failed to delete task", s.dialect.MapError(err))
	}

	if err := checkRowsAffected(result); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("task not found for delete",
				slog.String("task_id", id.String()),
				slog.String("user_id", userID.String()))
			return store.ErrTaskNotFound
		}
		return store.NewStoreError("task", "delete", "failed to read affected rows", err)
	}

	log.Debug("task deleted successfully", slog.String("task_id", id.String()))
	return nil
}

// WithTx implements store.TaskStore.WithTx.
func (s *TaskStore) WithTx(db store.DBTX) store.TaskStore {
	return &TaskStore{
		db:      db,
		dialect: s.dialect,
		logger:  s.logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var status string
	var createdAt, updatedAt time.Time

	if err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&status,
		&task.UserID,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	task.Status = domain.TaskStatus(status)
	task.CreatedAt = createdAt.UTC()
	task.UpdatedAt = updatedAt.UTC()
	return &task, nil
}

// checkRowsAffected returns store.ErrNotFound when a statement touched no rows.
func checkRowsAffected(result sql.Result) error {
	if result == nil {
		return fmt.Errorf("nil result provided to checkRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
