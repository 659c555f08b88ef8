package api

import (
	"net/http"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service"
)

// SignUpRequest defines the payload for the signup endpoint.
type SignUpRequest struct {
	Username string `json:"username" validate:"required,min=4,max=20,alphanum"`
	Password string `json:"password" validate:"required,min=8,max=20,alphanum,letterdigit"`
}

// SignInRequest defines the payload for the signin endpoint.
// Only presence is checked so a wrong password is always reported as 401.
type SignInRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Credentials converts the request to service credentials.
func (r SignUpRequest) Credentials() service.Credentials {
	return service.Credentials{Username: r.Username, Password: r.Password}
}

// Credentials converts the request to service credentials.
func (r SignInRequest) Credentials() service.Credentials {
	return service.Credentials{Username: r.Username, Password: r.Password}
}

// SignInResponse is returned by a successful signin.
type SignInResponse struct {
	AccessToken string `json:"accessToken"`
}

// CreateTaskRequest defines the payload for creating a task.
type CreateTaskRequest struct {
	Title       string `json:"title"       validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"required,min=1,max=2000"`
}

// UpdateTaskStatusRequest defines the payload for changing a task's status.
type UpdateTaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=OPEN IN_PROGRESS DONE"`
}

// TaskListQuery holds the query parameters of GET /tasks.
type TaskListQuery struct {
	Status string `json:"status" validate:"omitempty,oneof=OPEN IN_PROGRESS DONE"`
	Search string `json:"search" validate:"max=200"`
}

// taskListQueryFromRequest reads the list filters from the URL query string.
func taskListQueryFromRequest(r *http.Request) TaskListQuery {
	q := r.URL.Query()
	return TaskListQuery{
		Status: q.Get("status"),
		Search: q.Get("search"),
	}
}

// Filter converts a validated query into a domain filter.
// Empty values mean no constraint.
func (q TaskListQuery) Filter() domain.TaskFilter {
	var filter domain.TaskFilter
	if q.Status != "" {
		status := domain.TaskStatus(q.Status)
		filter.Status = &status
	}
	filter.Search = q.Search
	return filter
}
