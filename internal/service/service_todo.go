// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/store"
	"github.com/MKhiriev/go-todo-keeper/models"
)

// todoService applies the todo lifecycle on top of a TodoRepository. It
// keeps no todo state between calls; every operation re-reads the store.
type todoService struct {
	todoRepository store.TodoRepository

	now func() time.Time

	logger *logger.Logger
}

// NewTodoService constructs the plain TodoService without input validation.
// Wrap it with [NewTodoValidationService] before exposing it to transport.
func NewTodoService(todoRepository store.TodoRepository, logger *logger.Logger) TodoService {
	return &todoService{
		todoRepository: todoRepository,
		now:            time.Now,
		logger:         logger,
	}
}

// clock returns the current time in UTC, truncated to the microsecond
// precision of the PostgreSQL timestamp type.
func (s *todoService) clock() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func (s *todoService) Create(ctx context.Context, owner int64, input models.TodoInput) (models.Todo, error) {
	if owner <= 0 {
		return models.Todo{}, ErrValidationNoUserID
	}

	todo, err := s.todoRepository.CreateTodo(ctx, models.Todo{
		UserID:    owner,
		Title:     input.Title,
		Memo:      input.Memo,
		Important: input.Important,
		CreatedAt: s.clock(),
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*todoService.Create").Int64("user_id", owner).Msg("error creating todo")
		return models.Todo{}, fmt.Errorf("error creating todo: %w", err)
	}

	return todo, nil
}

func (s *todoService) ListActive(ctx context.Context, owner int64) ([]models.Todo, error) {
	if owner <= 0 {
		return nil, ErrValidationNoUserID
	}

	todos, err := s.todoRepository.ListActiveTodos(ctx, owner)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*todoService.ListActive").Int64("user_id", owner).Msg("error listing active todos")
		return nil, fmt.Errorf("error listing active todos: %w", err)
	}

	return todos, nil
}

// ListCompleted returns the owner's completed todos, most recently
// completed first.
func (s *todoService) ListCompleted(ctx context.Context, owner int64) ([]models.Todo, error) {
	if owner <= 0 {
		return nil, ErrValidationNoUserID
	}

	todos, err := s.todoRepository.ListCompletedTodos(ctx, owner)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*todoService.ListCompleted").Int64("user_id", owner).Msg("error listing completed todos")
		return nil, fmt.Errorf("error listing completed todos: %w", err)
	}

	return todos, nil
}

// GetForEdit fails with store.ErrTodoNotFound when owner has no todo with
// the given id, whether or not another user owns one.
func (s *todoService) GetForEdit(ctx context.Context, owner, todoID int64) (models.Todo, error) {
	if owner <= 0 {
		return models.Todo{}, ErrValidationNoUserID
	}

	todo, err := s.todoRepository.GetTodo(ctx, owner, todoID)
	if err != nil {
		return models.Todo{}, fmt.Errorf("error getting todo: %w", err)
	}

	return todo, nil
}

// Update writes the fields present in update. An empty update returns the
// stored todo unchanged.
func (s *todoService) Update(ctx context.Context, owner, todoID int64, update models.TodoUpdate) (models.Todo, error) {
	if owner <= 0 {
		return models.Todo{}, ErrValidationNoUserID
	}

	todo, err := s.todoRepository.UpdateTodo(ctx, owner, todoID, update)
	if err != nil {
		return models.Todo{}, fmt.Errorf("error updating todo: %w", err)
	}

	return todo, nil
}

// Complete stamps the todo with the current time. Completing a completed
// todo moves its timestamp forward.
func (s *todoService) Complete(ctx context.Context, owner, todoID int64) (models.Todo, error) {
	if owner <= 0 {
		return models.Todo{}, ErrValidationNoUserID
	}

	todo, err := s.todoRepository.CompleteTodo(ctx, owner, todoID, s.clock())
	if err != nil {
		return models.Todo{}, fmt.Errorf("error completing todo: %w", err)
	}

	return todo, nil
}

func (s *todoService) Delete(ctx context.Context, owner, todoID int64) error {
	if owner <= 0 {
		return ErrValidationNoUserID
	}

	if err := s.todoRepository.DeleteTodo(ctx, owner, todoID); err != nil {
		return fmt.Errorf("error deleting todo: %w", err)
	}

	return nil
}
