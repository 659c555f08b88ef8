package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents where a task is in its lifecycle.
// Any status may move to any other status.
type TaskStatus string

const (
	// TaskStatusOpen is the status every task is created with.
	TaskStatusOpen TaskStatus = "OPEN"

	// TaskStatusInProgress marks a task that is being worked on.
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"

	// TaskStatusDone marks a finished task.
	TaskStatusDone TaskStatus = "DONE"
)

// TaskStatuses lists every valid status in display order.
var TaskStatuses = []TaskStatus{TaskStatusOpen, TaskStatusInProgress, TaskStatusDone}

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusOpen, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// ParseTaskStatus converts a raw string into a TaskStatus.
func ParseTaskStatus(raw string) (TaskStatus, error) {
	status := TaskStatus(raw)
	if !status.Valid() {
		return "", NewValidationError("status", "must be one of OPEN, IN_PROGRESS, DONE", ErrInvalidTaskStatus)
	}
	return status, nil
}

// Task is a unit of work owned by exactly one user.
// UserID never changes after creation.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	UserID      uuid.UUID  `json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// NewTask creates an OPEN task for the given owner.
// IDs are UUIDv7, so ordering by ID follows creation order.
func NewTask(userID uuid.UUID, title, description string) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.Must(uuid.NewV7()),
		Title:       title,
		Description: description,
		Status:      TaskStatusOpen,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}
	if t.UserID == uuid.Nil {
		return NewValidationError("userId", "cannot be empty", ErrInvalidID)
	}
	if strings.TrimSpace(t.Title) == "" {
		return NewValidationError("title", "cannot be empty", ErrValidation)
	}
	if strings.TrimSpace(t.Description) == "" {
		return NewValidationError("description", "cannot be empty", ErrValidation)
	}
	if !t.Status.Valid() {
		return NewValidationError("status", "must be one of OPEN, IN_PROGRESS, DONE", ErrInvalidTaskStatus)
	}
	return nil
}

// SetStatus changes the status and bumps UpdatedAt.
func (t *Task) SetStatus(status TaskStatus) error {
	if !status.Valid() {
		return NewValidationError("status", "must be one of OPEN, IN_PROGRESS, DONE", ErrInvalidTaskStatus)
	}
	t.Status = status
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// TaskFilter narrows a task listing.
// A nil Status or empty Search means no constraint.
type TaskFilter struct {
	Status *TaskStatus `json:"status,omitempty"`
	Search string      `json:"search,omitempty"`
}
