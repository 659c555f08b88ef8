package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
// Every read and write is scoped by the owning user's ID.
type TaskStore interface {
	// Create saves a new task.
	// Returns ErrInvalidEntity if the owner does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task owned by userID.
	// Returns ErrTaskNotFound if no such task exists for that owner.
	GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error)

	// List returns the owner's tasks matching the filter, ordered by ID ascending.
	// Returns an empty slice when nothing matches.
	List(ctx context.Context, userID uuid.UUID, filter domain.TaskFilter) ([]*domain.Task, error)

	// Update persists the mutable fields of a task (status and updated_at).
	// The write is scoped by both task.ID and task.UserID.
	// Returns ErrTaskNotFound if no row was affected.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task owned by userID.
	// Returns ErrTaskNotFound if no row was affected.
	Delete(ctx context.Context, id, userID uuid.UUID) error

	// WithTx returns a TaskStore bound to the given executor.
	WithTx(db DBTX) TaskStore
}
