// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-todo-keeper/internal/app"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/service"
	"github.com/MKhiriev/go-todo-keeper/internal/utils"
	"github.com/MKhiriev/go-todo-keeper/models"
)

func (h *Handler) listActiveTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.services.TodoService.ListActive(r.Context(), ownerFromRequest(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, pageTodosActive, pageData{Title: "Current", Todos: todos})
}

func (h *Handler) listCompletedTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.services.TodoService.ListCompleted(r.Context(), ownerFromRequest(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, pageTodosCompleted, pageData{Title: "Completed", Todos: todos})
}

func (h *Handler) createTodoPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pageTodoCreate, pageData{Title: "Create"})
}

func (h *Handler) createTodo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.createTodo").Msg("error parsing todo form")
		h.fail(w, r, ErrInvalidForm)
		return
	}

	input := todoInputFromForm(r.PostForm)

	_, err := h.services.TodoService.Create(r.Context(), ownerFromRequest(r), input)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			h.render(w, r, http.StatusOK, pageTodoCreate, pageData{
				Title: "Create",
				Error: app.MsgBadTodoData,
				Todo:  models.Todo{Title: input.Title, Memo: input.Memo, Important: input.Important},
			})
			return
		}

		h.fail(w, r, err)
		return
	}

	http.Redirect(w, r, todosPath, http.StatusSeeOther)
}

func (h *Handler) editTodoPage(w http.ResponseWriter, r *http.Request) {
	todoID, err := todoIDFromRequest(r)
	if err != nil {
		h.notFound(w, r)
		return
	}

	todo, err := h.services.TodoService.GetForEdit(r.Context(), ownerFromRequest(r), todoID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, pageTodoEdit, pageData{Title: todo.Title, Todo: todo})
}

// updateTodo looks the todo up before touching it, so a foreign or missing
// todo is a 404 even when the submitted data is invalid.
func (h *Handler) updateTodo(w http.ResponseWriter, r *http.Request) {
	todoID, err := todoIDFromRequest(r)
	if err != nil {
		h.notFound(w, r)
		return
	}

	ctx := r.Context()
	owner := ownerFromRequest(r)

	todo, err := h.services.TodoService.GetForEdit(ctx, owner, todoID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err = r.ParseForm(); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.updateTodo").Msg("error parsing todo form")
		h.fail(w, r, ErrInvalidForm)
		return
	}

	if _, err = h.services.TodoService.Update(ctx, owner, todoID, todoUpdateFromForm(r.PostForm)); err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			h.render(w, r, http.StatusOK, pageTodoEdit, pageData{
				Title: todo.Title,
				Error: app.MsgBadTodoUpdate,
				Todo:  todo,
			})
			return
		}

		h.fail(w, r, err)
		return
	}

	http.Redirect(w, r, todosPath, http.StatusSeeOther)
}

func (h *Handler) completeTodo(w http.ResponseWriter, r *http.Request) {
	todoID, err := todoIDFromRequest(r)
	if err != nil {
		h.notFound(w, r)
		return
	}

	if _, err = h.services.TodoService.Complete(r.Context(), ownerFromRequest(r), todoID); err != nil {
		h.fail(w, r, err)
		return
	}

	http.Redirect(w, r, todosPath, http.StatusSeeOther)
}

func (h *Handler) deleteTodo(w http.ResponseWriter, r *http.Request) {
	todoID, err := todoIDFromRequest(r)
	if err != nil {
		h.notFound(w, r)
		return
	}

	if err = h.services.TodoService.Delete(r.Context(), ownerFromRequest(r), todoID); err != nil {
		h.fail(w, r, err)
		return
	}

	http.Redirect(w, r, todosPath, http.StatusSeeOther)
}

// ownerFromRequest returns the logged in user. Zero means anonymous and is
// rejected by the todo service.
func ownerFromRequest(r *http.Request) int64 {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	return userID
}

func todoIDFromRequest(r *http.Request) (int64, error) {
	todoID, err := strconv.ParseInt(chi.URLParam(r, "todoID"), 10, 64)
	if err != nil || todoID <= 0 {
		return 0, ErrInvalidTodoID
	}

	return todoID, nil
}

// todoInputFromForm strips surrounding whitespace from the text fields.
// The "important" checkbox is true whenever it is submitted at all.
func todoInputFromForm(form url.Values) models.TodoInput {
	return models.TodoInput{
		Title:     strings.TrimSpace(form.Get("title")),
		Memo:      strings.TrimSpace(form.Get("memo")),
		Important: form.Has("important"),
	}
}

// todoUpdateFromForm treats the edit form as a full replacement of the
// editable fields, like the create form.
func todoUpdateFromForm(form url.Values) models.TodoUpdate {
	input := todoInputFromForm(form)
	return models.TodoUpdate{
		Title:     &input.Title,
		Memo:      &input.Memo,
		Important: &input.Important,
	}
}
