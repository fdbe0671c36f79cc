package validators

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-todo-keeper/models"
)

// Field names accepted by [TodoValidator.Validate].
const (
	// FieldTitle checks that the title is non-blank and at most
	// models.TitleMaxLength characters long.
	FieldTitle = "title"

	// FieldUpdateFields requires an update to carry at least one field.
	FieldUpdateFields = "update_fields"
)

// TodoValidator validates todo input coming from the create and edit forms.
// All its failures are treated uniformly by the caller as "bad data".
type TodoValidator struct{}

// NewTodoValidator constructs a new TodoValidator and returns it as the
// Validator interface.
func NewTodoValidator() Validator {
	return &TodoValidator{}
}

// Validate dispatches on the dynamic type of obj.
//
// Supported types:
//   - models.TodoInput / *models.TodoInput (default fields: title)
//   - models.TodoUpdate / *models.TodoUpdate (default fields: title; the
//     title is only checked when present)
//
// Returns ErrUnsupportedType for any other value.
func (v *TodoValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.TodoInput:
		return v.validateTodoInput(ctx, value, fields...)
	case *models.TodoInput:
		return v.validateTodoInput(ctx, *value, fields...)

	case models.TodoUpdate:
		return v.validateTodoUpdate(ctx, value, fields...)
	case *models.TodoUpdate:
		return v.validateTodoUpdate(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *TodoValidator) validateTodoInput(ctx context.Context, input models.TodoInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle}
	}

	for _, f := range fields {
		switch f {
		case FieldTitle:
			if err := validateTitle(input.Title); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *TodoValidator) validateTodoUpdate(ctx context.Context, update models.TodoUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle}
	}

	for _, f := range fields {
		switch f {
		case FieldTitle:
			if update.Title == nil {
				continue
			}
			if err := validateTitle(*update.Title); err != nil {
				return err
			}
		case FieldUpdateFields:
			if update.IsEmpty() {
				return ErrNoFieldsToUpdate
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateTitle measures length in runes, not bytes.
func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > models.TitleMaxLength {
		return ErrTitleTooLong
	}

	return nil
}
