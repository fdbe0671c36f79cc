package server

import "context"

// Server defines the lifecycle contract of the application server.
type Server interface {
	// RunServer starts every configured transport and blocks until ctx is
	// cancelled or a transport fails, then shuts all transports down
	// gracefully.
	RunServer(ctx context.Context) error
}

// transport is one listener managed by [Server].
type transport interface {
	// RunServer serves requests and blocks until the transport stops. A stop
	// caused by Shutdown is not an error.
	RunServer() error

	// Shutdown stops accepting new requests and waits for in-flight ones
	// until ctx expires.
	Shutdown(ctx context.Context) error
}
