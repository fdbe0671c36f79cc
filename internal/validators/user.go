// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/MKhiriev/go-todo-keeper/models"
)

// UsernameMaxLength caps the length of a username in characters.
const UsernameMaxLength = 150

const (
	FieldUsername = "username"
	FieldPassword = "password"
)

// usernameSymbols are the non-alphanumeric characters allowed in a username.
const usernameSymbols = "@.+-_"

// UserValidator validates signup and login input.
type UserValidator struct{}

func NewUserValidator() Validator {
	return &UserValidator{}
}

// Validate accepts models.RegisterRequest and models.Credentials (by value
// or pointer). Both are checked for username and password by default.
func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateUser(value.Username, value.Password, fields...)
	case *models.RegisterRequest:
		return v.validateUser(value.Username, value.Password, fields...)

	case models.Credentials:
		return v.validateUser(value.Username, value.Password, fields...)
	case *models.Credentials:
		return v.validateUser(value.Username, value.Password, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateUser(username, password string, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if err := validateUsername(username); err != nil {
				return err
			}
		case FieldPassword:
			if password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateUsername allows letters, digits and the characters of usernameSymbols.
func validateUsername(username string) error {
	if username == "" {
		return ErrEmptyUsername
	}
	if utf8.RuneCountInString(username) > UsernameMaxLength {
		return ErrUsernameTooLong
	}

	for _, r := range username {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune(usernameSymbols, r) {
			continue
		}
		return ErrInvalidUsername
	}

	return nil
}
