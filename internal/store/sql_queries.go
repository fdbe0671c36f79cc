package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-todo-keeper/models"
)

const (
	usersTable    = "users"
	todosTable    = "todos"
	sessionsTable = "sessions"
)

var (
	userColumns    = []string{"user_id", "username", "password_hash", "created_at"}
	todoColumns    = []string{"todo_id", "user_id", "title", "memo", "important", "created_at", "completed_at"}
	sessionColumns = []string{"session_id", "user_id", "created_at", "expires_at"}
)

func buildCreateUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert(usersTable).
		Columns("username", "password_hash", "created_at").
		Values(user.Username, user.PasswordHash, user.CreatedAt).
		Suffix("RETURNING user_id").
		ToSql()
}

func buildFindUserByUsernameQuery(b sq.StatementBuilderType, username string) (string, []any, error) {
	return b.Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"username": username}).
		ToSql()
}

func buildCreateTodoQuery(b sq.StatementBuilderType, todo models.Todo) (string, []any, error) {
	return b.Insert(todosTable).
		Columns("user_id", "title", "memo", "important", "created_at").
		Values(todo.UserID, todo.Title, todo.Memo, todo.Important, todo.CreatedAt).
		Suffix("RETURNING todo_id").
		ToSql()
}

func buildGetTodoQuery(b sq.StatementBuilderType, userID, todoID int64) (string, []any, error) {
	return b.Select(todoColumns...).
		From(todosTable).
		Where(sq.Eq{"todo_id": todoID, "user_id": userID}).
		ToSql()
}

// buildListTodosQuery selects the active (completed_at IS NULL) or completed
// todos of one user. Active todos come in creation order, completed ones
// most recently completed first.
func buildListTodosQuery(b sq.StatementBuilderType, userID int64, completed bool) (string, []any, error) {
	query := b.Select(todoColumns...).
		From(todosTable).
		Where(sq.Eq{"user_id": userID})

	if completed {
		query = query.
			Where(sq.NotEq{"completed_at": nil}).
			OrderBy("completed_at DESC", "todo_id DESC")
	} else {
		query = query.
			Where(sq.Eq{"completed_at": nil}).
			OrderBy("created_at ASC", "todo_id ASC")
	}

	return query.ToSql()
}

// buildUpdateTodoQuery writes only the non-nil fields of update. The caller
// must not pass an empty update.
func buildUpdateTodoQuery(b sq.StatementBuilderType, userID, todoID int64, update models.TodoUpdate) (string, []any, error) {
	query := b.Update(todosTable)

	if update.Title != nil {
		query = query.Set("title", *update.Title)
	}
	if update.Memo != nil {
		query = query.Set("memo", *update.Memo)
	}
	if update.Important != nil {
		query = query.Set("important", *update.Important)
	}

	return query.
		Where(sq.Eq{"todo_id": todoID, "user_id": userID}).
		ToSql()
}

func buildCompleteTodoQuery(b sq.StatementBuilderType, userID, todoID int64, completedAt time.Time) (string, []any, error) {
	return b.Update(todosTable).
		Set("completed_at", completedAt).
		Where(sq.Eq{"todo_id": todoID, "user_id": userID}).
		ToSql()
}

func buildDeleteTodoQuery(b sq.StatementBuilderType, userID, todoID int64) (string, []any, error) {
	return b.Delete(todosTable).
		Where(sq.Eq{"todo_id": todoID, "user_id": userID}).
		ToSql()
}

func buildSaveSessionQuery(b sq.StatementBuilderType, session models.Session) (string, []any, error) {
	return b.Insert(sessionsTable).
		Columns(sessionColumns...).
		Values(session.SessionID, session.UserID, session.CreatedAt, session.ExpiresAt).
		ToSql()
}

func buildGetSessionQuery(b sq.StatementBuilderType, sessionID string) (string, []any, error) {
	return b.Select(sessionColumns...).
		From(sessionsTable).
		Where(sq.Eq{"session_id": sessionID}).
		ToSql()
}

func buildDeleteSessionQuery(b sq.StatementBuilderType, sessionID string) (string, []any, error) {
	return b.Delete(sessionsTable).
		Where(sq.Eq{"session_id": sessionID}).
		ToSql()
}

func buildDeleteExpiredSessionsQuery(b sq.StatementBuilderType, now time.Time) (string, []any, error) {
	return b.Delete(sessionsTable).
		Where(sq.LtOrEq{"expires_at": now}).
		ToSql()
}
