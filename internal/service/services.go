package service

import (
	"github.com/MKhiriev/go-todo-keeper/internal/config"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/store"
	"github.com/MKhiriev/go-todo-keeper/models"
)

type Services struct {
	AuthService    AuthService
	TodoService    TodoService
	AppInfoService AppInfoService
	HealthService  HealthService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, err
	}

	todoService := NewTodoValidationService().Wrap(NewTodoService(storages.TodoRepository, logger))

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, storages.SessionStorage, cfg.App, logger),
		TodoService:    todoService,
		AppInfoService: appInfoService,
		HealthService:  NewHealthService(storages, logger),
	}, nil
}
