package http

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/utils"
	"github.com/MKhiriev/go-todo-keeper/models"
)

const sessionCookieName = "session"

// loadSession resolves the session cookie, if any, and stores the user and
// session ids in the request context under [utils.UserIDCtxKey] and
// [utils.SessionIDCtxKey].
//
// A missing cookie is not an error: the request simply continues as
// anonymous. A cookie that no longer maps to a live session is expired on
// the client and the request also continues as anonymous.
func (h *Handler) loadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseSession(ctx, cookie.Value)
		if err != nil {
			logger.FromRequest(r).Debug().Err(err).Msg("session cookie rejected")
			h.clearSessionCookie(w)
			next.ServeHTTP(w, r)
			return
		}

		ctx = context.WithValue(ctx, utils.UserIDCtxKey, token.UserID)
		ctx = context.WithValue(ctx, utils.SessionIDCtxKey, token.SessionID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireSession lets through only requests that loadSession attached a user
// to. Everyone else is sent to the login page with the original location in
// the "next" query parameter.
func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
			redirectToLogin(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, loginPath+"?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token models.Token) {
	cookie := &http.Cookie{
		Name:     sessionCookieName,
		Value:    token.SignedString,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
	if token.ExpiresAt != nil {
		cookie.Expires = token.ExpiresAt.Time
	}

	http.SetCookie(w, cookie)
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
