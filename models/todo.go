// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// TitleMaxLength is the maximum number of characters allowed in a todo title.
const TitleMaxLength = 300

// Todo is a single task record owned by exactly one user.
//
// A todo with a nil CompletedAt is active; a non-nil CompletedAt marks it as
// completed and records the completion time. TodoID, UserID and CreatedAt are
// assigned once at creation and never change afterwards.
type Todo struct {
	// TodoID is the unique identifier assigned by the database.
	TodoID int64 `json:"id"`

	// UserID is the owner of the todo.
	UserID int64 `json:"-"`

	// Title is the required short description, at most TitleMaxLength characters.
	Title string `json:"title"`

	// Memo is optional free text.
	Memo string `json:"memo"`

	// Important flags the todo for the user's attention.
	Important bool `json:"important"`

	// CreatedAt is set exactly once when the todo is stored.
	CreatedAt time.Time `json:"created_at"`

	// CompletedAt is nil while the todo is active.
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// IsCompleted reports whether the todo has been completed.
func (t Todo) IsCompleted() bool {
	return t.CompletedAt != nil
}

// TableName returns the name of the database table
// associated with the Todo model.
func (t Todo) TableName() string {
	return "todos"
}

// TodoInput holds the user-editable fields of a new todo.
type TodoInput struct {
	Title     string `json:"title"`
	Memo      string `json:"memo"`
	Important bool   `json:"important"`
}

// TodoUpdate describes a partial update of a todo.
// Only non-nil fields are written. Completion time, creation time, owner and
// identifier cannot be changed through an update.
type TodoUpdate struct {
	Title     *string `json:"title,omitempty"`
	Memo      *string `json:"memo,omitempty"`
	Important *bool   `json:"important,omitempty"`
}

// IsEmpty reports whether the update carries no fields.
func (u TodoUpdate) IsEmpty() bool {
	return u.Title == nil && u.Memo == nil && u.Important == nil
}
