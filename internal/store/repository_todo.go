// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/models"
)

// todoRepository is the SQL implementation of [TodoRepository] over the
// "todos" table. Every statement filters by both todo_id and user_id.
type todoRepository struct {
	*DB
	logger *logger.Logger
}

// NewTodoRepository constructs a [TodoRepository] backed by db.
func NewTodoRepository(db *DB, logger *logger.Logger) TodoRepository {
	logger.Debug().Msg("creating todo repository")
	return &todoRepository{
		DB:     db,
		logger: logger,
	}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (models.Todo, error) {
	var (
		todo        models.Todo
		completedAt sql.NullTime
	)

	err := row.Scan(
		&todo.TodoID,
		&todo.UserID,
		&todo.Title,
		&todo.Memo,
		&todo.Important,
		&todo.CreatedAt,
		&completedAt,
	)
	if err != nil {
		return models.Todo{}, err
	}

	todo.CreatedAt = todo.CreatedAt.UTC()
	if completedAt.Valid {
		at := completedAt.Time.UTC()
		todo.CompletedAt = &at
	}

	return todo, nil
}

// CreateTodo inserts todo and returns it with the assigned TodoID.
func (t *todoRepository) CreateTodo(ctx context.Context, todo models.Todo) (models.Todo, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateTodoQuery(t.builder, todo)
	if err != nil {
		log.Err(err).Str("func", "*todoRepository.CreateTodo").Msg("failed to create query")
		return models.Todo{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = t.QueryRowContext(ctx, query, args...).Scan(&todo.TodoID); err != nil {
		log.Err(err).
			Str("func", "*todoRepository.CreateTodo").
			Int64("user_id", todo.UserID).
			Str("class", t.classify(err).String()).
			Msg("failed to insert todo")
		return models.Todo{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return todo, nil
}

// GetTodo returns the todo todoID owned by userID or [ErrTodoNotFound].
func (t *todoRepository) GetTodo(ctx context.Context, userID, todoID int64) (models.Todo, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetTodoQuery(t.builder, userID, todoID)
	if err != nil {
		log.Err(err).Str("func", "*todoRepository.GetTodo").Msg("failed to create query")
		return models.Todo{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	todo, err := scanTodo(t.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Todo{}, ErrTodoNotFound
		}

		log.Err(err).
			Str("func", "*todoRepository.GetTodo").
			Int64("user_id", userID).
			Int64("todo_id", todoID).
			Msg("failed to scan todo row")
		return models.Todo{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return todo, nil
}

func (t *todoRepository) ListActiveTodos(ctx context.Context, userID int64) ([]models.Todo, error) {
	return t.listTodos(ctx, userID, false)
}

func (t *todoRepository) ListCompletedTodos(ctx context.Context, userID int64) ([]models.Todo, error) {
	return t.listTodos(ctx, userID, true)
}

func (t *todoRepository) listTodos(ctx context.Context, userID int64, completed bool) ([]models.Todo, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListTodosQuery(t.builder, userID, completed)
	if err != nil {
		log.Err(err).Str("func", "*todoRepository.listTodos").Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := t.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*todoRepository.listTodos").
			Int64("user_id", userID).
			Bool("completed", completed).
			Msg("failed to execute query for listing todos")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	todos := make([]models.Todo, 0, 16)
	for rows.Next() {
		todo, scanErr := scanTodo(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "*todoRepository.listTodos").
				Int64("user_id", userID).
				Msg("failed to scan todo row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		todos = append(todos, todo)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "*todoRepository.listTodos").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return todos, nil
}

// UpdateTodo writes the non-nil fields of update and returns the stored todo.
// An empty update only checks existence.
func (t *todoRepository) UpdateTodo(ctx context.Context, userID, todoID int64, update models.TodoUpdate) (models.Todo, error) {
	if update.IsEmpty() {
		return t.GetTodo(ctx, userID, todoID)
	}

	query, args, err := buildUpdateTodoQuery(t.builder, userID, todoID, update)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*todoRepository.UpdateTodo").Msg("failed to create query")
		return models.Todo{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = t.execScoped(ctx, "*todoRepository.UpdateTodo", userID, todoID, query, args); err != nil {
		return models.Todo{}, err
	}

	return t.GetTodo(ctx, userID, todoID)
}

// CompleteTodo sets completed_at unconditionally, overwriting an earlier
// completion time.
func (t *todoRepository) CompleteTodo(ctx context.Context, userID, todoID int64, completedAt time.Time) (models.Todo, error) {
	query, args, err := buildCompleteTodoQuery(t.builder, userID, todoID, completedAt)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*todoRepository.CompleteTodo").Msg("failed to create query")
		return models.Todo{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = t.execScoped(ctx, "*todoRepository.CompleteTodo", userID, todoID, query, args); err != nil {
		return models.Todo{}, err
	}

	return t.GetTodo(ctx, userID, todoID)
}

func (t *todoRepository) DeleteTodo(ctx context.Context, userID, todoID int64) error {
	query, args, err := buildDeleteTodoQuery(t.builder, userID, todoID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*todoRepository.DeleteTodo").Msg("failed to create query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return t.execScoped(ctx, "*todoRepository.DeleteTodo", userID, todoID, query, args)
}

// execScoped runs a single-row DML statement and maps zero affected rows to
// [ErrTodoNotFound].
func (t *todoRepository) execScoped(ctx context.Context, funcName string, userID, todoID int64, query string, args []any) error {
	log := logger.FromContext(ctx)

	result, err := t.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Int64("user_id", userID).
			Int64("todo_id", todoID).
			Str("class", t.classify(err).String()).
			Msg("failed to execute statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Int64("user_id", userID).
			Int64("todo_id", todoID).
			Msg("failed to get rows affected")
		return fmt.Errorf("%w: %w", ErrRowsAffected, err)
	}

	if rowsAffected == 0 {
		log.Debug().
			Str("func", funcName).
			Int64("user_id", userID).
			Int64("todo_id", todoID).
			Msg("no rows affected: todo not found")
		return ErrTodoNotFound
	}

	return nil
}
