// Package grpc implements the gRPC transport of the application: the
// standard grpc.health.v1 service backed by the storage health check.
package grpc

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/service"
)

// ServiceName is the service name accepted by Check next to the empty
// "whole server" name.
const ServiceName = "go-todo-keeper"

// Handler is the root gRPC transport handler.
//
// It answers grpc.health.v1 Check requests with SERVING while the storage
// backends respond and NOT_SERVING otherwise. Watch and List are left to
// the embedded [grpc_health_v1.UnimplementedHealthServer].
type Handler struct {
	grpc_health_v1.UnimplementedHealthServer

	// services provides access to all application business operations.
	services *service.Services

	// logger is used for request-scoped and diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler] with the provided service container and
// logger.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}

// Register attaches the health service to registrar.
func (h *Handler) Register(registrar grpclib.ServiceRegistrar) {
	grpc_health_v1.RegisterHealthServer(registrar, h)
}

func (h *Handler) Check(ctx context.Context, request *grpc_health_v1.HealthCheckRequest) (*grpc_health_v1.HealthCheckResponse, error) {
	switch request.GetService() {
	case "", ServiceName:
	default:
		return nil, status.Errorf(codes.NotFound, "unknown service %q", request.GetService())
	}

	if err := h.services.HealthService.Check(ctx); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*Handler.Check").Msg("service is not serving")
		return &grpc_health_v1.HealthCheckResponse{Status: grpc_health_v1.HealthCheckResponse_NOT_SERVING}, nil
	}

	return &grpc_health_v1.HealthCheckResponse{Status: grpc_health_v1.HealthCheckResponse_SERVING}, nil
}
