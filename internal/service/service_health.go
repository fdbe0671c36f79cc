package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
)

// defaultHealthCheckTimeout bounds a single Check when the caller's context
// has no deadline of its own.
const defaultHealthCheckTimeout = 2 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

type healthService struct {
	storages pinger
	timeout  time.Duration

	logger *logger.Logger
}

// NewHealthService builds a HealthService on top of anything that can ping
// its connections, normally *store.Storages.
func NewHealthService(storages pinger, logger *logger.Logger) HealthService {
	return &healthService{
		storages: storages,
		timeout:  defaultHealthCheckTimeout,
		logger:   logger,
	}
}

func (h *healthService) Check(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	if err := h.storages.Ping(ctx); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*healthService.Check").Msg("storage is unhealthy")
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	return nil
}
