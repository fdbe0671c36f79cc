package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-todo-keeper/internal/validators"
	"github.com/MKhiriev/go-todo-keeper/models"
)

// TodoValidationService checks form input before it reaches the wrapped
// TodoService. Failures wrap ErrValidationFailed together with the
// validator sentinel.
type TodoValidationService struct {
	inner     TodoService
	validator validators.Validator
}

func NewTodoValidationService() TodoServiceWrapper {
	return &TodoValidationService{
		validator: validators.NewTodoValidator(),
	}
}

func (v *TodoValidationService) Create(ctx context.Context, owner int64, input models.TodoInput) (models.Todo, error) {
	if err := v.validator.Validate(ctx, input); err != nil {
		return models.Todo{}, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	return v.inner.Create(ctx, owner, input)
}

func (v *TodoValidationService) ListActive(ctx context.Context, owner int64) ([]models.Todo, error) {
	return v.inner.ListActive(ctx, owner)
}

func (v *TodoValidationService) ListCompleted(ctx context.Context, owner int64) ([]models.Todo, error) {
	return v.inner.ListCompleted(ctx, owner)
}

func (v *TodoValidationService) GetForEdit(ctx context.Context, owner, todoID int64) (models.Todo, error) {
	return v.inner.GetForEdit(ctx, owner, todoID)
}

func (v *TodoValidationService) Update(ctx context.Context, owner, todoID int64, update models.TodoUpdate) (models.Todo, error) {
	if err := v.validator.Validate(ctx, update); err != nil {
		return models.Todo{}, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	return v.inner.Update(ctx, owner, todoID, update)
}

func (v *TodoValidationService) Complete(ctx context.Context, owner, todoID int64) (models.Todo, error) {
	return v.inner.Complete(ctx, owner, todoID)
}

func (v *TodoValidationService) Delete(ctx context.Context, owner, todoID int64) error {
	return v.inner.Delete(ctx, owner, todoID)
}

func (v *TodoValidationService) Wrap(wrapper TodoService) TodoService {
	v.inner = wrapper
	return v
}
