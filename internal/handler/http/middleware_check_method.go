// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod returns an [http.HandlerFunc] intended to be registered as
// the router's MethodNotAllowed handler via [chi.Mux.MethodNotAllowed].
//
// Chi answers 405 Method Not Allowed when a path matches a registered route
// but the method does not. This handler answers with notFound instead, so
// that "GET /logout" or "GET /todos/1/delete" look exactly like unknown
// paths. A nil notFound writes a bare 404.
//
// The check uses [chi.Mux.Match], so parameterised routes such as
// "/todos/{todoID}" are resolved the same way the router resolves them. If
// the method turns out to be registered after all, the request is handed to
// the router.
func CheckHTTPMethod(router *chi.Mux, notFound http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if router.Match(chi.NewRouteContext(), r.Method, r.URL.Path) {
			router.ServeHTTP(w, r)
			return
		}

		if notFound == nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		notFound(w, r)
	}
}
