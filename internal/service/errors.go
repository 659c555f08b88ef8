package service

import (
	"errors"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check them with errors.Is; the API layer maps them to HTTP status codes.
//
// Validation failures are returned as *domain.ValidationError and are not
// listed here.
var (
	// ErrUsernameTaken indicates a signup used a username that already exists.
	// API layer should map this to HTTP 409 Conflict.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrInvalidCredentials indicates an unknown username or a wrong password.
	// The two cases are deliberately indistinguishable to the caller.
	// API layer should map this to HTTP 401 Unauthorized.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTaskNotFound indicates the task does not exist or belongs to another user.
	// API layer should map this to HTTP 404 Not Found.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInternal hides an unexpected failure from the caller.
	// The cause is logged where it happens and never wrapped into this error.
	// API layer should map this to HTTP 500 Internal Server Error.
	ErrInternal = errors.New("internal server error")
)

// errOrigin names the store entity and operation behind err. The wrapped
// error chain stands in for a stack trace. The group is empty, and slog
// drops it, when err did not come from a store.
func errOrigin(err error) slog.Attr {
	var storeErr *store.StoreError
	if !errors.As(err, &storeErr) {
		return slog.Group("origin")
	}
	return slog.Group("origin",
		slog.String("entity", storeErr.Entity),
		slog.String("op", storeErr.Operation))
}
