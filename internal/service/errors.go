package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrHashingPassword     = errors.New("failed to hash password")

	ErrSessionCreationFailed     = errors.New("session creation failed")
	ErrSessionIsExpiredOrInvalid = errors.New("session is expired or invalid")

	ErrValidationFailed   = errors.New("validation failed")
	ErrValidationNoUserID = errors.New("no user ID for todo was given")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrStorageUnavailable    = errors.New("storage is unavailable")
)
