package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewTask(t *testing.T) {
	userID := uuid.New()

	task, err := NewTask(userID, "Buy milk", "2%")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.ID == uuid.Nil {
		t.Error("Expected non-nil task ID")
	}
	if task.ID.Version() != 7 {
		t.Errorf("Expected UUIDv7 task ID, got version %d", task.ID.Version())
	}
	if task.Status != TaskStatusOpen {
		t.Errorf("Expected status %s, got %s", TaskStatusOpen, task.Status)
	}
	if task.UserID != userID {
		t.Errorf("Expected owner %s, got %s", userID, task.UserID)
	}
	if !task.CreatedAt.Equal(task.UpdatedAt) {
		t.Error("Expected CreatedAt and UpdatedAt to match on creation")
	}

	_, err = NewTask(uuid.Nil, "Buy milk", "2%")
	if !errors.Is(err, ErrInvalidID) {
		t.Errorf("Expected error %v, got %v", ErrInvalidID, err)
	}

	_, err = NewTask(userID, "   ", "2%")
	if !IsValidationError(err) {
		t.Errorf("Expected validation error for blank title, got %v", err)
	}

	_, err = NewTask(userID, "Buy milk", "")
	if !IsValidationError(err) {
		t.Errorf("Expected validation error for empty description, got %v", err)
	}
}

func TestNewTaskIDsFollowCreationOrder(t *testing.T) {
	userID := uuid.New()
	prev, err := NewTask(userID, "first", "first")
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 50; i++ {
		next, err := NewTask(userID, "next", "next")
		if err != nil {
			t.Fatal(err)
		}
		if next.ID.String() <= prev.ID.String() {
			t.Fatalf("Expected %s to sort after %s", next.ID, prev.ID)
		}
		prev = next
	}
}

func TestParseTaskStatus(t *testing.T) {
	for _, s := range TaskStatuses {
		got, err := ParseTaskStatus(string(s))
		if err != nil {
			t.Errorf("Expected %s to parse, got %v", s, err)
		}
		if got != s {
			t.Errorf("Expected %s, got %s", s, got)
		}
	}

	for _, raw := range []string{"", "open", "CLOSED", "DONE "} {
		if _, err := ParseTaskStatus(raw); !errors.Is(err, ErrInvalidTaskStatus) {
			t.Errorf("Expected %q to be rejected, got %v", raw, err)
		}
	}
}

func TestTaskSetStatus(t *testing.T) {
	task, err := NewTask(uuid.New(), "Buy milk", "2%")
	if err != nil {
		t.Fatal(err)
	}
	before := task.UpdatedAt
	time.Sleep(time.Millisecond)

	// Any transition is allowed, including back to OPEN.
	for _, s := range []TaskStatus{TaskStatusDone, TaskStatusOpen, TaskStatusInProgress} {
		if err := task.SetStatus(s); err != nil {
			t.Fatalf("Expected transition to %s, got %v", s, err)
		}
		if task.Status != s {
			t.Errorf("Expected status %s, got %s", s, task.Status)
		}
	}
	if !task.UpdatedAt.After(before) {
		t.Error("Expected UpdatedAt to advance")
	}

	if err := task.SetStatus("ARCHIVED"); !errors.Is(err, ErrInvalidTaskStatus) {
		t.Errorf("Expected invalid status error, got %v", err)
	}
	if task.Status != TaskStatusInProgress {
		t.Errorf("Expected status to be unchanged after rejected update, got %s", task.Status)
	}
}
