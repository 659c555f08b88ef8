package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

const usersTable = "users"

var userColumns = []string{"id", "username", "password_hash", "created_at"}

// UserStore implements the store.UserStore interface using a SQL database.
type UserStore struct {
	db      store.DBTX
	dialect Dialect
	logger  *slog.Logger
}

// NewUserStore creates a new SQL implementation of the UserStore interface.
// It accepts a database connection or transaction that is managed by the caller.
// If logger is nil, a default logger will be used.
func NewUserStore(db store.DBTX, dialect Dialect, logger *slog.Logger) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if dialect == nil {
		panic("dialect cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &UserStore{
		db:      db,
		dialect: dialect,
		logger:  logger.With(slog.String("component", "user_store")),
	}
}

// Ensure UserStore implements store.UserStore interface
var _ store.UserStore = (*UserStore)(nil)

// Create implements store.UserStore.Create.
// Returns store.ErrUsernameExists when the unique constraint on username fires.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query, args, err := sq.Insert(usersTable).
		Columns(userColumns...).
		Values(user.ID, user.Username, user.HashedPassword, user.CreatedAt.UTC()).
		PlaceholderFormat(s.dialect.Placeholder()).
		ToSql()
	if err != nil {
		return store.NewStoreError("user", "create", "failed to build query", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		mapped := s.dialect.MapError(err)
		if errors.Is(mapped, store.ErrDuplicate) {
			log.Debug("username already exists", slog.String("user_id", user.ID.String()))
			return store.ErrUsernameExists
		}

		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return store.NewStoreError("user", "create", "failed to insert user", mapped)
	}

	log.Debug("user created successfully", slog.String("user_id", user.ID.String()))
	return nil
}

// GetByUsername implements store.UserStore.GetByUsername.
// Returns store.ErrUserNotFound if no user has that username.
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := sq.Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"username": username}).
		PlaceholderFormat(s.dialect.Placeholder()).
		ToSql()
	if err != nil {
		return nil, store.NewStoreError("user", "get", "failed to build query", err)
	}

	var user domain.User
	var createdAt time.Time
	err = s.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Username,
		&user.HashedPassword,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found")
			return nil, store.ErrUserNotFound
		}

		log.Error("failed to get user by username", slog.String("error", err.Error()))
		return nil, store.NewStoreError("user", "get", "failed to query user", s.dialect.MapError(err))
	}
	user.CreatedAt = createdAt.UTC()

	return &user, nil
}

// WithTx implements store.UserStore.WithTx.
func (s *UserStore) WithTx(db store.DBTX) store.UserStore {
	return &UserStore{
		db:      db,
		dialect: s.dialect,
		logger:  s.logger,
	}
}
