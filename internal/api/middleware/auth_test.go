package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/mocks"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware_Authenticate(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Username: "alice1"}

	tests := []struct {
		name         string
		header       string
		setupMock    func(m *mocks.MockAuthService)
		wantStatus   int
		wantMessage  string
		wantUserSeen bool
	}{
		{
			name:        "missing header",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Authorization header required",
		},
		{
			name:        "wrong scheme",
			header:      "Basic abc",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid authorization format",
		},
		{
			name:        "scheme without token",
			header:      "Bearer ",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid authorization format",
		},
		{
			name:   "expired token",
			header: "Bearer expired",
			setupMock: func(m *mocks.MockAuthService) {
				m.On("Authenticate", mock.Anything, "expired").Return(nil, auth.ErrExpiredToken)
			},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Token expired",
		},
		{
			name:   "invalid token",
			header: "Bearer garbage",
			setupMock: func(m *mocks.MockAuthService) {
				m.On("Authenticate", mock.Anything, "garbage").Return(nil, auth.ErrInvalidToken)
			},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid token",
		},
		{
			name:   "user no longer exists",
			header: "Bearer orphan",
			setupMock: func(m *mocks.MockAuthService) {
				m.On("Authenticate", mock.Anything, "orphan").Return(nil, service.ErrInvalidCredentials)
			},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Unauthorized",
		},
		{
			name:   "internal failure",
			header: "Bearer valid",
			setupMock: func(m *mocks.MockAuthService) {
				m.On("Authenticate", mock.Anything, "valid").Return(nil, errors.New("db down"))
			},
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Authentication error",
		},
		{
			name:   "valid token",
			header: "Bearer valid",
			setupMock: func(m *mocks.MockAuthService) {
				m.On("Authenticate", mock.Anything, "valid").Return(user, nil)
			},
			wantStatus:   http.StatusOK,
			wantUserSeen: true,
		},
		{
			name:   "lowercase scheme",
			header: "bearer valid",
			setupMock: func(m *mocks.MockAuthService) {
				m.On("Authenticate", mock.Anything, "valid").Return(user, nil)
			},
			wantStatus:   http.StatusOK,
			wantUserSeen: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			authService := &mocks.MockAuthService{}
			if tc.setupMock != nil {
				tc.setupMock(authService)
			}

			var seen *domain.User
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = shared.UserFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()

			NewAuthMiddleware(authService).Authenticate(next).ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.wantUserSeen {
				assert.Same(t, user, seen)
			} else {
				assert.Nil(t, seen)
				var resp shared.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tc.wantMessage, resp.Error)
			}
			authService.AssertExpectations(t)
		})
	}
}

func TestNewAuthMiddleware_NilService(t *testing.T) {
	assert.Panics(t, func() { NewAuthMiddleware(nil) })
}
