// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents an account entity used for authentication and ownership
// of todo items. Sensitive fields must never be exposed outside trusted
// boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"-"`

	// Username is the unique, non-empty login name of the user.
	Username string `json:"username"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// It is never rendered, serialized or logged.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Credentials carries the username/password pair submitted on login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"-"`
}

// RegisterRequest carries the fields of the signup form.
type RegisterRequest struct {
	Username             string `json:"username"`
	Password             string `json:"-"`
	PasswordConfirmation string `json:"-"`
}
