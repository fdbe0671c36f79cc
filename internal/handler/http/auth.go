package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-todo-keeper/internal/app"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/service"
	"github.com/MKhiriev/go-todo-keeper/internal/store"
	"github.com/MKhiriev/go-todo-keeper/internal/utils"
	"github.com/MKhiriev/go-todo-keeper/models"
)

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pageHome, pageData{})
}

func (h *Handler) signupPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pageSignup, pageData{Title: "Sign Up"})
}

// signup registers a new user from the signup form, logs them in and
// redirects to the active list. Recoverable failures re-render the form
// with 200 and a message.
func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if err := r.ParseForm(); err != nil {
		log.Err(err).Str("func", "*Handler.signup").Msg("error parsing signup form")
		h.fail(w, r, ErrInvalidForm)
		return
	}

	request := models.RegisterRequest{
		Username:             strings.TrimSpace(r.PostForm.Get("username")),
		Password:             r.PostForm.Get("password1"),
		PasswordConfirmation: r.PostForm.Get("password2"),
	}

	user, err := h.services.AuthService.Register(r.Context(), request)
	if err != nil {
		data := pageData{Title: "Sign Up", Username: request.Username}
		switch {
		case errors.Is(err, store.ErrUsernameTaken):
			data.Error = app.MsgUsernameTaken
		case errors.Is(err, service.ErrPasswordMismatch):
			data.Error = app.MsgPasswordsDoNotMatch
		case errors.Is(err, service.ErrInvalidDataProvided):
			data.Error = app.MsgInvalidSignupData
		default:
			log.Err(err).Str("func", "*Handler.signup").Msg("error registering user")
			h.fail(w, r, err)
			return
		}

		h.render(w, r, http.StatusOK, pageSignup, data)
		return
	}

	if err = h.startSession(w, r, user); err != nil {
		h.fail(w, r, err)
		return
	}

	http.Redirect(w, r, todosPath, http.StatusSeeOther)
}

func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pageLogin, pageData{Title: "Login"})
}

// login authenticates the user from the login form and sends them to the
// active list.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if err := r.ParseForm(); err != nil {
		log.Err(err).Str("func", "*Handler.login").Msg("error parsing login form")
		h.fail(w, r, ErrInvalidForm)
		return
	}

	credentials := models.Credentials{
		Username: strings.TrimSpace(r.PostForm.Get("username")),
		Password: r.PostForm.Get("password"),
	}

	user, err := h.services.AuthService.Login(r.Context(), credentials)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.render(w, r, http.StatusOK, pageLogin, pageData{
				Title:    "Login",
				Error:    app.MsgInvalidCredentials,
				Username: credentials.Username,
			})
			return
		}

		log.Err(err).Str("func", "*Handler.login").Msg("error logging in")
		h.fail(w, r, err)
		return
	}

	if err = h.startSession(w, r, user); err != nil {
		h.fail(w, r, err)
		return
	}

	http.Redirect(w, r, todosPath, http.StatusSeeOther)
}

// logout ends the current session and sends the user home.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID, _ := utils.GetSessionIDFromContext(ctx)

	if err := h.services.AuthService.EndSession(ctx, sessionID); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.logout").Msg("error ending session")
		h.fail(w, r, err)
		return
	}

	h.clearSessionCookie(w)
	http.Redirect(w, r, homePath, http.StatusSeeOther)
}

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, user models.User) error {
	token, err := h.services.AuthService.StartSession(r.Context(), user)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.startSession").Int64("user_id", user.UserID).Msg("error starting session")
		return err
	}

	h.setSessionCookie(w, token)
	return nil
}
