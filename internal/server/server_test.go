package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/go-todo-keeper/internal/config"
	"github.com/MKhiriev/go-todo-keeper/internal/handler"
	myGRPC "github.com/MKhiriev/go-todo-keeper/internal/handler/grpc"
	myHTTP "github.com/MKhiriev/go-todo-keeper/internal/handler/http"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/service"
)

// ─────────────────────────────────────────────────────────────────────────────
// helpers
// ─────────────────────────────────────────────────────────────────────────────

type healthyService struct{}

func (healthyService) Check(context.Context) error { return nil }

func testServices() *service.Services {
	return &service.Services{HealthService: healthyService{}}
}

// fakeTransport blocks in RunServer until Shutdown is called or runErr is
// returned immediately.
type fakeTransport struct {
	runErr      error
	shutdownErr error

	stop      chan struct{}
	shutdowns atomic.Int32
}

func newFakeTransport(runErr, shutdownErr error) *fakeTransport {
	return &fakeTransport{runErr: runErr, shutdownErr: shutdownErr, stop: make(chan struct{})}
}

func (f *fakeTransport) RunServer() error {
	if f.runErr != nil {
		return f.runErr
	}
	<-f.stop
	return nil
}

func (f *fakeTransport) Shutdown(context.Context) error {
	if f.shutdowns.Add(1) == 1 {
		close(f.stop)
	}
	return f.shutdownErr
}

func localListener(t *testing.T) net.Listener {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	return listener
}

// ─────────────────────────────────────────────────────────────────────────────
// NewServer
// ─────────────────────────────────────────────────────────────────────────────

func TestNewServer(t *testing.T) {
	httpHandler, err := myHTTP.NewHandler(testServices(), config.StructuredConfig{}, logger.Nop())
	require.NoError(t, err)
	grpcHandler := myGRPC.NewHandler(testServices(), logger.Nop())

	tests := []struct {
		name     string
		handlers *handler.Handlers
		cfg      config.Server
		wantErr  error
		wantHTTP bool
		wantGRPC bool
	}{
		{
			name:     "no handlers",
			handlers: &handler.Handlers{},
			cfg:      config.Server{HTTPAddress: ":8080", GRPCAddress: ":9090"},
			wantErr:  errNoServersAreCreated,
		},
		{
			name:     "handler without address",
			handlers: &handler.Handlers{HTTP: httpHandler},
			cfg:      config.Server{},
			wantErr:  errNoServersAreCreated,
		},
		{
			name:     "http only",
			handlers: &handler.Handlers{HTTP: httpHandler},
			cfg:      config.Server{HTTPAddress: ":8080", RequestTimeout: 3 * time.Second},
			wantHTTP: true,
		},
		{
			name:     "grpc only",
			handlers: &handler.Handlers{GRPC: grpcHandler},
			cfg:      config.Server{GRPCAddress: ":9090"},
			wantGRPC: true,
		},
		{
			name:     "both",
			handlers: &handler.Handlers{HTTP: httpHandler, GRPC: grpcHandler},
			cfg:      config.Server{HTTPAddress: ":8080", GRPCAddress: ":9090"},
			wantHTTP: true,
			wantGRPC: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, err := NewServer(tt.handlers, tt.cfg, logger.Nop())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, srv)
				return
			}
			require.NoError(t, err)

			s, ok := srv.(*server)
			require.True(t, ok)
			assert.Equal(t, tt.wantHTTP, s.httpServer != nil)
			assert.Equal(t, tt.wantGRPC, s.gRPCServer != nil)
			assert.Len(t, s.transports(), btoi(tt.wantHTTP)+btoi(tt.wantGRPC))
		})
	}
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}

func TestNewHTTPServer_Timeouts(t *testing.T) {
	h := newHTTPServer(http.NotFoundHandler(), config.Server{HTTPAddress: ":0", RequestTimeout: 2 * time.Second}, logger.Nop())

	assert.Equal(t, ":0", h.server.Addr)
	assert.Equal(t, readHeaderTimeout, h.server.ReadHeaderTimeout)
	assert.Equal(t, 2*time.Second, h.server.ReadTimeout)
	assert.Equal(t, 2*time.Second+writeTimeoutGrace, h.server.WriteTimeout)

	noTimeout := newHTTPServer(http.NotFoundHandler(), config.Server{HTTPAddress: ":0"}, logger.Nop())
	assert.Zero(t, noTimeout.server.ReadTimeout)
	assert.Zero(t, noTimeout.server.WriteTimeout)
}

// ─────────────────────────────────────────────────────────────────────────────
// runTransports
// ─────────────────────────────────────────────────────────────────────────────

func TestRunTransports_ContextCancelled(t *testing.T) {
	first, second := newFakeTransport(nil, nil), newFakeTransport(nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runTransports(ctx, []transport{first, second}, time.Second, logger.Nop())
	}()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("runTransports did not return after cancel")
	}
	assert.EqualValues(t, 1, first.shutdowns.Load())
	assert.EqualValues(t, 1, second.shutdowns.Load())
}

func TestRunTransports_TransportFails(t *testing.T) {
	listenErr := errors.New("address already in use")
	failing, healthy := newFakeTransport(listenErr, nil), newFakeTransport(nil, nil)

	err := runTransports(context.Background(), []transport{failing, healthy}, time.Second, logger.Nop())

	assert.ErrorIs(t, err, listenErr)
	assert.EqualValues(t, 1, healthy.shutdowns.Load())
}

func TestRunTransports_ShutdownErrorIsReturned(t *testing.T) {
	shutdownErr := errors.New("shutdown timed out")
	tr := newFakeTransport(nil, shutdownErr)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runTransports(ctx, []transport{tr}, time.Second, logger.Nop())
	assert.ErrorIs(t, err, shutdownErr)
}

func TestRunTransports_NoTransports(t *testing.T) {
	err := runTransports(context.Background(), nil, time.Second, logger.Nop())
	assert.ErrorIs(t, err, errNoServersAreCreated)
}

// ─────────────────────────────────────────────────────────────────────────────
// transports over the wire
// ─────────────────────────────────────────────────────────────────────────────

func TestHTTPServer_ServeAndShutdown(t *testing.T) {
	h := newHTTPServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "pong")
	}), config.Server{}, logger.Nop())

	listener := localListener(t)
	served := make(chan error, 1)
	go func() { served <- h.serve(listener) }()

	resp, err := http.Get("http://" + listener.Addr().String() + "/ping")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", string(body))

	require.NoError(t, h.Shutdown(context.Background()))
	assert.NoError(t, <-served)
}

func TestHTTPServer_RunServer_ListenError(t *testing.T) {
	h := newHTTPServer(http.NotFoundHandler(), config.Server{HTTPAddress: "missing-port"}, logger.Nop())

	assert.Error(t, h.RunServer())
}

func TestGRPCServer_ServeAndShutdown(t *testing.T) {
	g := newGRPCServer(myGRPC.NewHandler(testServices(), logger.Nop()), config.Server{}, logger.Nop())

	listener := localListener(t)
	served := make(chan error, 1)
	go func() { served <- g.serve(listener) }()

	conn, err := grpclib.NewClient("passthrough:///"+listener.Addr().String(),
		grpclib.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	resp, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, resp.GetStatus())
	require.NoError(t, conn.Close())

	require.NoError(t, g.Shutdown(context.Background()))
	assert.NoError(t, <-served)
}

func TestGRPCServer_RunServer_ListenError(t *testing.T) {
	g := newGRPCServer(myGRPC.NewHandler(testServices(), logger.Nop()), config.Server{GRPCAddress: "missing-port"}, logger.Nop())

	assert.Error(t, g.RunServer())
}
