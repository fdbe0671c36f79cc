// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-todo-keeper server handlers.
//
// All Msg* constants are human-readable strings shown to the user on the
// rendered pages or written into plain-text responses.
package app

const (
	// MsgUsernameTaken is shown on the signup page when the username is
	// already registered.
	MsgUsernameTaken = "The following username has been taken. Please enter another Username"

	// MsgPasswordsDoNotMatch is shown on the signup page when the two
	// password fields differ.
	MsgPasswordsDoNotMatch = "Passwords do not match"

	// MsgInvalidSignupData is shown on the signup page when the username or
	// password is empty or the username contains forbidden characters.
	MsgInvalidSignupData = "Please enter a valid username and password"

	// MsgInvalidCredentials is shown on the login page for an unknown
	// username and for a wrong password alike.
	MsgInvalidCredentials = "Invalid Credentials"

	// MsgBadTodoData is shown on the create page when the todo fails validation.
	MsgBadTodoData = "Bad Data passed in.Try again"

	// MsgBadTodoUpdate is shown on the edit page when the update fails validation.
	MsgBadTodoUpdate = "Bad Info Provided"

	MsgInternalServerError = "internal server error"
	MsgServiceUnavailable  = "service unavailable"
	MsgBadRequest          = "bad request"
	MsgOK                  = "ok"
)
