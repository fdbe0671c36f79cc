package http

import (
	"html/template"
	"time"

	"github.com/MKhiriev/go-todo-keeper/internal/config"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/service"
)

// Handler serves the web pages and plain endpoints of the application.
type Handler struct {
	services *service.Services

	pages          map[string]*template.Template
	secureCookies  bool
	requestTimeout time.Duration

	logger *logger.Logger
}

// NewHandler parses the embedded page templates and returns a Handler bound
// to services. Cookie and timeout settings are read from cfg.
func NewHandler(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) (*Handler, error) {
	pages, err := parsePages()
	if err != nil {
		logger.Err(err).Str("func", "NewHandler").Msg("error parsing page templates")
		return nil, err
	}

	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		pages:          pages,
		secureCookies:  cfg.App.SecureCookies,
		requestTimeout: cfg.Server.RequestTimeout,
		logger:         logger,
	}, nil
}
