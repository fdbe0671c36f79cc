package server

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-todo-keeper/internal/config"
	"github.com/MKhiriev/go-todo-keeper/internal/handler"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
)

const defaultShutdownTimeout = 10 * time.Second

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer

	shutdownTimeout time.Duration
	logger          *logger.Logger
}

// NewServer creates a transport for every handler present in handlers.
func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{
		shutdownTimeout: defaultShutdownTimeout,
		logger:          logger,
	}

	if handlers.HTTP != nil && cfg.HTTPAddress != "" {
		servers.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	}
	if handlers.GRPC != nil && cfg.GRPCAddress != "" {
		servers.gRPCServer = newGRPCServer(handlers.GRPC, cfg, logger)
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

func (s *server) transports() []transport {
	var transports []transport
	if s.httpServer != nil {
		transports = append(transports, s.httpServer)
	}
	if s.gRPCServer != nil {
		transports = append(transports, s.gRPCServer)
	}
	return transports
}

func (s *server) RunServer(ctx context.Context) error {
	return runTransports(ctx, s.transports(), s.shutdownTimeout, s.logger)
}

// runTransports starts every transport and waits for ctx to be cancelled or
// for the first transport to stop on its own. All transports are then shut
// down within shutdownTimeout.
func runTransports(ctx context.Context, transports []transport, shutdownTimeout time.Duration, logger *logger.Logger) error {
	if len(transports) == 0 {
		return errNoServersAreCreated
	}

	stopped := make(chan error, len(transports))
	for _, t := range transports {
		go func() {
			stopped <- t.RunServer()
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info().Msg("shutdown requested")
	case runErr = <-stopped:
		logger.Err(runErr).Msg("transport stopped unexpectedly")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	errs := []error{runErr}
	for _, t := range transports {
		errs = append(errs, t.Shutdown(shutdownCtx))
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}

	logger.Info().Msg("server Shutdown gracefully")
	return nil
}
