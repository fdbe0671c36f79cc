package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-todo-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts.
type UserRepository interface {
	// CreateUser stores a new user and returns it with UserID filled in.
	// A duplicate username yields [ErrUsernameTaken].
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByUsername returns [ErrNoUserWasFound] for an unknown username.
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
}

// TodoRepository persists todos. Every lookup and mutation takes the owner
// id next to the todo id; a todo of another user is indistinguishable from a
// missing one and yields [ErrTodoNotFound].
type TodoRepository interface {
	CreateTodo(ctx context.Context, todo models.Todo) (models.Todo, error)
	GetTodo(ctx context.Context, userID, todoID int64) (models.Todo, error)
	ListActiveTodos(ctx context.Context, userID int64) ([]models.Todo, error)
	ListCompletedTodos(ctx context.Context, userID int64) ([]models.Todo, error)
	UpdateTodo(ctx context.Context, userID, todoID int64, update models.TodoUpdate) (models.Todo, error)
	CompleteTodo(ctx context.Context, userID, todoID int64, completedAt time.Time) (models.Todo, error)
	DeleteTodo(ctx context.Context, userID, todoID int64) error
}

// SessionStorage keeps login sessions.
type SessionStorage interface {
	SaveSession(ctx context.Context, session models.Session) error
	// GetSession returns [ErrSessionNotFound] for unknown or expired sessions.
	GetSession(ctx context.Context, sessionID string) (models.Session, error)
	// DeleteSession is a no-op for unknown sessions.
	DeleteSession(ctx context.Context, sessionID string) error
	// DeleteExpiredSessions removes sessions that expired at or before now
	// and returns how many were removed.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// ErrorClassificator maps driver-specific errors onto storage semantics.
type ErrorClassificator interface {
	// Classify decides whether the failed operation may be retried.
	Classify(err error) ErrorClassification
	// IsUniqueViolation reports whether err is a unique constraint failure.
	IsUniqueViolation(err error) bool
}
