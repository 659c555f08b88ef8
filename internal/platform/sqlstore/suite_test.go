package sqlstore_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/sqlstore"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreSuite exercises both stores against a migrated database.
// newDB must return an empty database for each call.
func runStoreSuite(t *testing.T, newDB func(t *testing.T) *sql.DB, dialect sqlstore.Dialect) {
	t.Run("UserStore", func(t *testing.T) {
		testUserStore(t, newDB(t), dialect)
	})
	t.Run("TaskStore", func(t *testing.T) {
		testTaskStore(t, newDB(t), dialect)
	})
}

func mustCreateUser(t *testing.T, users *sqlstore.UserStore, username string) *domain.User {
	t.Helper()

	user, err := domain.NewUser(username, "$2a$10$abcdefghijklmnopqrstuuABCDEFGHIJKLMNOPQRSTUVWXYZ01234")
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func mustCreateTask(t *testing.T, tasks *sqlstore.TaskStore, userID uuid.UUID, title, description string) *domain.Task {
	t.Helper()

	task, err := domain.NewTask(userID, title, description)
	require.NoError(t, err)
	require.NoError(t, tasks.Create(context.Background(), task))
	return task
}

func testUserStore(t *testing.T, db *sql.DB, dialect sqlstore.Dialect) {
	ctx := context.Background()
	users := sqlstore.NewUserStore(db, dialect, nil)

	t.Run("create and get by username", func(t *testing.T) {
		created := mustCreateUser(t, users, "alice01")

		got, err := users.GetByUsername(ctx, "alice01")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, created.Username, got.Username)
		assert.Equal(t, created.HashedPassword, got.HashedPassword)
		assert.WithinDuration(t, created.CreatedAt, got.CreatedAt, time.Millisecond)
	})

	t.Run("duplicate username", func(t *testing.T) {
		mustCreateUser(t, users, "bob0001")

		dup, err := domain.NewUser("bob0001", "$2a$10$anotherhash")
		require.NoError(t, err)

		err = users.Create(ctx, dup)
		assert.ErrorIs(t, err, store.ErrUsernameExists)
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	t.Run("unknown username", func(t *testing.T) {
		got, err := users.GetByUsername(ctx, "nobody99")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("invalid user is rejected before insert", func(t *testing.T) {
		err := users.Create(ctx, &domain.User{ID: uuid.New(), Username: "x", HashedPassword: "h"})
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})
}

func testTaskStore(t *testing.T, db *sql.DB, dialect sqlstore.Dialect) {
	ctx := context.Background()
	users := sqlstore.NewUserStore(db, dialect, nil)
	tasks := sqlstore.NewTaskStore(db, dialect, nil)

	owner := mustCreateUser(t, users, "owner01")
	other := mustCreateUser(t, users, "other01")

	first := mustCreateTask(t, tasks, owner.ID, "Buy milk", "Two litres from the corner shop")
	second := mustCreateTask(t, tasks, owner.ID, "Write report", "Quarterly MILK production numbers")
	third := mustCreateTask(t, tasks, owner.ID, "100% done", "Celebrate")
	foreign := mustCreateTask(t, tasks, other.ID, "Buy milk", "Someone else's errand")

	t.Run("get own task", func(t *testing.T) {
		got, err := tasks.GetByID(ctx, first.ID, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, got.ID)
		assert.Equal(t, "Buy milk", got.Title)
		assert.Equal(t, domain.TaskStatusOpen, got.Status)
		assert.Equal(t, owner.ID, got.UserID)
		assert.WithinDuration(t, first.CreatedAt, got.CreatedAt, time.Millisecond)
	})

	t.Run("task of another user is not found", func(t *testing.T) {
		got, err := tasks.GetByID(ctx, foreign.ID, owner.ID)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("missing task is not found", func(t *testing.T) {
		_, err := tasks.GetByID(ctx, uuid.New(), owner.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("create for unknown owner", func(t *testing.T) {
		task, err := domain.NewTask(uuid.New(), "Orphan", "No owner")
		require.NoError(t, err)
		assert.ErrorIs(t, tasks.Create(ctx, task), store.ErrInvalidEntity)
	})

	t.Run("list is scoped and ordered by creation", func(t *testing.T) {
		got, err := tasks.List(ctx, owner.ID, domain.TaskFilter{})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{first.ID, second.ID, third.ID}, taskIDs(got))
	})

	t.Run("search matches title or description case-insensitively", func(t *testing.T) {
		got, err := tasks.List(ctx, owner.ID, domain.TaskFilter{Search: "Milk"})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{first.ID, second.ID}, taskIDs(got))
	})

	t.Run("search treats wildcards literally", func(t *testing.T) {
		got, err := tasks.List(ctx, owner.ID, domain.TaskFilter{Search: "0%"})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{third.ID}, taskIDs(got))

		got, err = tasks.List(ctx, owner.ID, domain.TaskFilter{Search: "_"})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("no match returns empty slice", func(t *testing.T) {
		got, err := tasks.List(ctx, owner.ID, domain.TaskFilter{Search: "nothing like this"})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("search folds non-ASCII letters", func(t *testing.T) {
		umlaut := mustCreateUser(t, users, "umlaut01")
		upper := mustCreateTask(t, tasks, umlaut.ID, "ÄRGER mit Straße", "Brief schreiben")
		lower := mustCreateTask(t, tasks, umlaut.ID, "Notiz", "Ärger lowercase")
		mustCreateTask(t, tasks, umlaut.ID, "Arger", "plain ASCII spelling")

		for _, term := range []string{"ärger", "ÄRGER", "Ärger"} {
			got, err := tasks.List(ctx, umlaut.ID, domain.TaskFilter{Search: term})
			require.NoError(t, err, term)
			assert.Equal(t, []uuid.UUID{upper.ID, lower.ID}, taskIDs(got), term)
		}

		got, err := tasks.List(ctx, umlaut.ID, domain.TaskFilter{Search: "STRASSE"})
		require.NoError(t, err)
		assert.Empty(t, got)

		got, err = tasks.List(ctx, umlaut.ID, domain.TaskFilter{Search: "straße"})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{upper.ID}, taskIDs(got))
	})

	t.Run("update status", func(t *testing.T) {
		task, err := tasks.GetByID(ctx, second.ID, owner.ID)
		require.NoError(t, err)
		require.NoError(t, task.SetStatus(domain.TaskStatusDone))
		require.NoError(t, tasks.Update(ctx, task))

		got, err := tasks.GetByID(ctx, second.ID, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusDone, got.Status)
		assert.Equal(t, task.Title, got.Title)
	})

	t.Run("filter by status combines with search", func(t *testing.T) {
		done := domain.TaskStatusDone
		got, err := tasks.List(ctx, owner.ID, domain.TaskFilter{Status: &done})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{second.ID}, taskIDs(got))

		open := domain.TaskStatusOpen
		got, err = tasks.List(ctx, owner.ID, domain.TaskFilter{Status: &open, Search: "milk"})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{first.ID}, taskIDs(got))
	})

	t.Run("update of another user's task is not found", func(t *testing.T) {
		hijack := *foreign
		hijack.UserID = owner.ID
		require.NoError(t, hijack.SetStatus(domain.TaskStatusDone))
		assert.ErrorIs(t, tasks.Update(ctx, &hijack), store.ErrTaskNotFound)

		got, err := tasks.GetByID(ctx, foreign.ID, other.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusOpen, got.Status)
	})

	t.Run("delete of another user's task is not found", func(t *testing.T) {
		assert.ErrorIs(t, tasks.Delete(ctx, foreign.ID, owner.ID), store.ErrTaskNotFound)

		_, err := tasks.GetByID(ctx, foreign.ID, other.ID)
		assert.NoError(t, err)
	})

	t.Run("delete own task", func(t *testing.T) {
		require.NoError(t, tasks.Delete(ctx, third.ID, owner.ID))

		_, err := tasks.GetByID(ctx, third.ID, owner.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)

		assert.ErrorIs(t, tasks.Delete(ctx, third.ID, owner.ID), store.ErrTaskNotFound)
	})

	t.Run("WithTx rollback discards writes", func(t *testing.T) {
		tx, err := db.BeginTx(ctx, nil)
		require.NoError(t, err)

		task, err := domain.NewTask(owner.ID, "Temporary", "Rolled back")
		require.NoError(t, err)
		require.NoError(t, tasks.WithTx(tx).Create(ctx, task))
		require.NoError(t, tx.Rollback())

		_, err = tasks.GetByID(ctx, task.ID, owner.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func taskIDs(tasks []*domain.Task) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	return ids
}
