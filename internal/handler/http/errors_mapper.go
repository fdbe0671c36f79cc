package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-todo-keeper/internal/service"
	"github.com/MKhiriev/go-todo-keeper/internal/store"
)

var errorStatusMap = map[error]int{
	ErrInvalidTodoID: http.StatusNotFound,
	ErrInvalidForm:   http.StatusBadRequest,

	service.ErrInvalidDataProvided:       http.StatusBadRequest,
	service.ErrPasswordMismatch:          http.StatusBadRequest,
	service.ErrValidationFailed:          http.StatusBadRequest,
	service.ErrInvalidCredentials:        http.StatusUnauthorized,
	service.ErrSessionIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrValidationNoUserID:        http.StatusUnauthorized,
	service.ErrStorageUnavailable:        http.StatusServiceUnavailable,

	store.ErrUsernameTaken: http.StatusConflict,
	store.ErrTodoNotFound:  http.StatusNotFound,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
