package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	homePath  = "/"
	loginPath = "/login"
	todosPath = "/todos"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging, withGZip)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}
	router.Use(h.loadSession)

	// routes without a session
	router.Group(func(r chi.Router) {
		r.Get(homePath, h.home)
		r.Get("/api/version", h.getServerVersion)
		r.Get("/api/health", h.getHealth)

		r.Get("/signup", h.signupPage)
		r.Post("/signup", h.signup)
		r.Get(loginPath, h.loginPage)
		r.Post(loginPath, h.login)
	})

	// routes that need a logged in user
	router.Group(func(r chi.Router) {
		r.Use(h.requireSession)

		r.Post("/logout", h.logout)

		r.Get(todosPath, h.listActiveTodos)
		r.Get("/todos/completed", h.listCompletedTodos)
		r.Get("/todos/new", h.createTodoPage)
		r.Post("/todos/new", h.createTodo)
		r.Get("/todos/{todoID}", h.editTodoPage)
		r.Post("/todos/{todoID}", h.updateTodo)
		r.Post("/todos/{todoID}/complete", h.completeTodo)
		r.Post("/todos/{todoID}/delete", h.deleteTodo)
	})

	router.NotFound(h.notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router, h.notFound))

	return router
}
