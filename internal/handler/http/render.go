// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/MKhiriev/go-todo-keeper/internal/app"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/utils"
	"github.com/MKhiriev/go-todo-keeper/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names. Each page is its own template file rendered inside layout.html.
const (
	pageHome           = "home"
	pageSignup         = "signup"
	pageLogin          = "login"
	pageTodosActive    = "todos_active"
	pageTodosCompleted = "todos_completed"
	pageTodoCreate     = "todo_create"
	pageTodoEdit       = "todo_edit"
	pageNotFound       = "not_found"
)

var pageNames = []string{
	pageHome,
	pageSignup,
	pageLogin,
	pageTodosActive,
	pageTodosCompleted,
	pageTodoCreate,
	pageTodoEdit,
	pageNotFound,
}

const timeLayout = "Jan 2, 2006 15:04"

var templateFuncs = template.FuncMap{
	"formatTime": func(t time.Time) string {
		return t.Format(timeLayout)
	},
}

// pageData is the single view model shared by every page.
type pageData struct {
	Title    string
	LoggedIn bool
	Error    string

	// Username is echoed back into the auth forms.
	Username string

	Todos []models.Todo
	Todo  models.Todo
}

func parsePages() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New(name).
			Funcs(templateFuncs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("error parsing page %q: %w", name, err)
		}
		pages[name] = tmpl
	}

	return pages, nil
}

// render executes page into a buffer first so that a template failure can
// still be answered with a clean 500.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data pageData) {
	log := logger.FromRequest(r)

	tmpl, ok := h.pages[page]
	if !ok {
		log.Err(ErrPageNotFound).Str("func", "*Handler.render").Str("page", page).Send()
		http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	_, data.LoggedIn = utils.GetUserIDFromContext(r.Context())

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Err(err).Str("func", "*Handler.render").Str("page", page).Msg("error executing template")
		http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Err(err).Str("func", "*Handler.render").Msg("error writing page")
	}
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, pageNotFound, pageData{Title: "Not Found"})
}

// fail answers a request whose error could not be recovered on the page.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	switch status {
	case http.StatusNotFound:
		h.notFound(w, r)
	case http.StatusUnauthorized:
		redirectToLogin(w, r)
	default:
		logger.FromRequest(r).Err(err).Int("status", status).Msg("request failed")
		http.Error(w, http.StatusText(status), status)
	}
}
