package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyTitle       = errors.New("title is required")
	ErrTitleTooLong     = errors.New("title is too long")
	ErrNoFieldsToUpdate = errors.New("at least one field must be provided for update")

	ErrEmptyUsername   = errors.New("username is required")
	ErrUsernameTooLong = errors.New("username is too long")
	ErrInvalidUsername = errors.New("username contains invalid characters")
	ErrEmptyPassword   = errors.New("password is required")
)
