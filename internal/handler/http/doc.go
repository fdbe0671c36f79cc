// Package http implements the HTTP transport layer of the application.
//
// It exposes route wiring, HTML form handlers, and middleware for the todo
// web application. Request tracing, access logging, response compression,
// and session loading are handled in this package before requests are
// delegated to the service layer.
package http
