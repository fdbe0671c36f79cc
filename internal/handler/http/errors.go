// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced by the HTTP layer itself. Callers can match
// against them with [errors.Is].
var (
	// ErrInvalidTodoID is returned when the {todoID} path segment is not a
	// positive integer. Such requests are answered with 404 Not Found.
	ErrInvalidTodoID = errors.New("invalid todo id in path")

	// ErrPageNotFound is returned by render when the requested page has no
	// parsed template.
	ErrPageNotFound = errors.New("page template not found")

	// ErrInvalidForm is returned when the request body cannot be parsed as a form.
	ErrInvalidForm = errors.New("invalid form data")
)
