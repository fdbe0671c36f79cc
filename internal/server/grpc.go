package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"google.golang.org/grpc"

	"github.com/MKhiriev/go-todo-keeper/internal/config"
	myGRPC "github.com/MKhiriev/go-todo-keeper/internal/handler/grpc"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
)

type grpcServer struct {
	server  *grpc.Server
	address string

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) *grpcServer {
	server := grpc.NewServer(grpc.UnaryInterceptor(handler.LoggingInterceptor))
	handler.Register(server)

	return &grpcServer{
		server:  server,
		address: cfg.GRPCAddress,
		logger:  logger,
	}
}

func (g *grpcServer) RunServer() error {
	listener, err := net.Listen("tcp", g.address)
	if err != nil {
		return fmt.Errorf("gRPC server listen on %q: %w", g.address, err)
	}

	return g.serve(listener)
}

func (g *grpcServer) serve(listener net.Listener) error {
	g.logger.Info().Str("address", listener.Addr().String()).Msg("gRPC server listening")

	if err := g.server.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		g.logger.Err(err).Msg("gRPC server Serve")
		return fmt.Errorf("gRPC server Serve: %w", err)
	}

	return nil
}

// Shutdown waits for in-flight calls and falls back to a hard stop when ctx
// expires first.
func (g *grpcServer) Shutdown(ctx context.Context) error {
	g.logger.Info().Msg("gRPC server Shutdown")

	stopped := make(chan struct{})
	go func() {
		g.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		return nil
	case <-ctx.Done():
		g.server.Stop()
		return fmt.Errorf("gRPC server Shutdown: %w", ctx.Err())
	}
}
