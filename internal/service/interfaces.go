package service

import (
	"context"

	"github.com/MKhiriev/go-todo-keeper/models"
)

// AuthService covers the account and session lifecycle.
type AuthService interface {
	// Register creates a new account. It fails with ErrInvalidDataProvided,
	// ErrPasswordMismatch or store.ErrUsernameTaken.
	Register(ctx context.Context, request models.RegisterRequest) (models.User, error)
	// Login returns ErrInvalidCredentials for an unknown username and for a
	// wrong password alike.
	Login(ctx context.Context, credentials models.Credentials) (models.User, error)

	StartSession(ctx context.Context, user models.User) (models.Token, error)
	ParseSession(ctx context.Context, tokenString string) (models.Token, error)
	EndSession(ctx context.Context, sessionID string) error
}

// TodoService implements the todo lifecycle. Every method takes the acting
// owner explicitly and only ever sees that owner's todos.
type TodoService interface {
	Create(ctx context.Context, owner int64, input models.TodoInput) (models.Todo, error)
	ListActive(ctx context.Context, owner int64) ([]models.Todo, error)
	ListCompleted(ctx context.Context, owner int64) ([]models.Todo, error)
	GetForEdit(ctx context.Context, owner, todoID int64) (models.Todo, error)
	Update(ctx context.Context, owner, todoID int64, update models.TodoUpdate) (models.Todo, error)
	Complete(ctx context.Context, owner, todoID int64) (models.Todo, error)
	Delete(ctx context.Context, owner, todoID int64) error
}

// AppInfoService exposes what the running process is.
type AppInfoService interface {
	// GetAppVersion returns the configured application version.
	GetAppVersion(ctx context.Context) string
	// GetBuildInfo returns the metadata injected at link time.
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// TodoServiceWrapper defines middleware composition for TodoService.
// Implementations wrap an existing TodoService to add behavior such as
// logging or validating.
type TodoServiceWrapper interface {
	Wrap(TodoService) TodoService // returns a decorated TodoService applying additional behavior
}

// HealthService reports whether the storage backends answer.
type HealthService interface {
	Check(ctx context.Context) error
}
