// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-todo-keeper/internal/app"
	"github.com/MKhiriev/go-todo-keeper/internal/service"
	"github.com/MKhiriev/go-todo-keeper/internal/store"
	"github.com/MKhiriev/go-todo-keeper/models"
)

func signupForm(username, password1, password2 string) url.Values {
	return url.Values{
		"username":  {username},
		"password1": {password1},
		"password2": {password2},
	}
}

// ─────────────────────────────────────────────
// signup
// ─────────────────────────────────────────────

func TestSignup_Success(t *testing.T) {
	expiresAt := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	var gotRequest models.RegisterRequest
	var gotUser models.User
	auth := &mockAuthService{
		registerFn: func(_ context.Context, request models.RegisterRequest) (models.User, error) {
			gotRequest = request
			return models.User{UserID: 7, Username: request.Username}, nil
		},
		startSessionFn: func(_ context.Context, user models.User) (models.Token, error) {
			gotUser = user
			return models.Token{
				SignedString:     "signed.session.token",
				RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(expiresAt)},
			}, nil
		},
	}
	router := newTestHandler(t, newTestServices(auth, nil)).Init()

	rec := doRequest(router, http.MethodPost, "/signup", signupForm("  alice  ", " pw ", " pw "), false)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/todos", rec.Header().Get("Location"))

	assert.Equal(t, models.RegisterRequest{Username: "alice", Password: " pw ", PasswordConfirmation: " pw "}, gotRequest)
	assert.Equal(t, int64(7), gotUser.UserID)

	cookie := findCookie(rec, sessionCookieName)
	require.NotNil(t, cookie)
	assert.Equal(t, "signed.session.token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)
	assert.True(t, expiresAt.Equal(cookie.Expires))
}

func TestSignup_SecureCookie(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, request models.RegisterRequest) (models.User, error) {
			return models.User{UserID: 1}, nil
		},
	}
	h := newTestHandler(t, newTestServices(auth, nil))
	h.secureCookies = true

	rec := doRequest(h.Init(), http.MethodPost, "/signup", signupForm("alice", "pw", "pw"), false)

	cookie := findCookie(rec, sessionCookieName)
	require.NotNil(t, cookie)
	assert.True(t, cookie.Secure)
}

func TestSignup_RecoverableErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{
			name:    "username taken",
			err:     fmt.Errorf("user creation ended with error: %w", store.ErrUsernameTaken),
			message: app.MsgUsernameTaken,
		},
		{
			name:    "passwords do not match",
			err:     service.ErrPasswordMismatch,
			message: app.MsgPasswordsDoNotMatch,
		},
		{
			name:    "invalid data",
			err:     fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, errors.New("empty username")),
			message: app.MsgInvalidSignupData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			started := false
			auth := &mockAuthService{
				registerFn: func(_ context.Context, _ models.RegisterRequest) (models.User, error) {
					return models.User{}, tt.err
				},
				startSessionFn: func(_ context.Context, _ models.User) (models.Token, error) {
					started = true
					return models.Token{}, nil
				},
			}
			router := newTestHandler(t, newTestServices(auth, nil)).Init()

			rec := doRequest(router, http.MethodPost, "/signup", signupForm("alice", "pw1", "pw2"), false)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.message)
			assert.Contains(t, rec.Body.String(), `value="alice"`)
			assert.Nil(t, findCookie(rec, sessionCookieName))
			assert.False(t, started)
		})
	}
}

func TestSignup_UnexpectedError(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, _ models.RegisterRequest) (models.User, error) {
			return models.User{}, fmt.Errorf("user creation ended with error: %w", store.ErrExecutingStatement)
		},
	}
	router := newTestHandler(t, newTestServices(auth, nil)).Init()

	rec := doRequest(router, http.MethodPost, "/signup", signupForm("alice", "pw", "pw"), false)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSignup_StartSessionFails(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, _ models.RegisterRequest) (models.User, error) {
			return models.User{UserID: 1}, nil
		},
		startSessionFn: func(_ context.Context, _ models.User) (models.Token, error) {
			return models.Token{}, service.ErrSessionCreationFailed
		},
	}
	router := newTestHandler(t, newTestServices(auth, nil)).Init()

	rec := doRequest(router, http.MethodPost, "/signup", signupForm("alice", "pw", "pw"), false)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Nil(t, findCookie(rec, sessionCookieName))
}

// ─────────────────────────────────────────────
// login
// ─────────────────────────────────────────────

func TestLoginPage(t *testing.T) {
	router := newTestHandler(t, newTestServices(nil, nil)).Init()

	rec := doRequest(router, http.MethodGet, "/login?next="+url.QueryEscape("/todos/completed"), nil, false)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/login"`)
	assert.NotContains(t, rec.Body.String(), `name="next"`)
}

func TestLogin_RedirectsToActiveList(t *testing.T) {
	tests := []struct {
		name string
		next string
	}{
		{name: "no next", next: ""},
		{name: "local next is ignored", next: "/todos/completed"},
		{name: "absolute url next is ignored", next: "https://evil.example/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotCredentials models.Credentials
			auth := &mockAuthService{
				loginFn: func(_ context.Context, credentials models.Credentials) (models.User, error) {
					gotCredentials = credentials
					return models.User{UserID: 3, Username: credentials.Username}, nil
				},
			}
			router := newTestHandler(t, newTestServices(auth, nil)).Init()

			form := url.Values{"username": {" bob "}, "password": {"secret"}, "next": {tt.next}}
			rec := doRequest(router, http.MethodPost, "/login?next="+url.QueryEscape(tt.next), form, false)

			require.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, "/todos", rec.Header().Get("Location"))
			assert.Equal(t, models.Credentials{Username: "bob", Password: "secret"}, gotCredentials)
			assert.NotNil(t, findCookie(rec, sessionCookieName))
		})
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	auth := &mockAuthService{
		loginFn: func(_ context.Context, _ models.Credentials) (models.User, error) {
			return models.User{}, service.ErrInvalidCredentials
		},
	}
	router := newTestHandler(t, newTestServices(auth, nil)).Init()

	form := url.Values{"username": {"bob"}, "password": {"nope"}}
	rec := doRequest(router, http.MethodPost, "/login", form, false)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, app.MsgInvalidCredentials)
	assert.Contains(t, body, `value="bob"`)
	assert.Nil(t, findCookie(rec, sessionCookieName))
}

func TestLogin_UnexpectedError(t *testing.T) {
	auth := &mockAuthService{
		loginFn: func(_ context.Context, _ models.Credentials) (models.User, error) {
			return models.User{}, fmt.Errorf("user search by username failed: %w", store.ErrScanningRow)
		},
	}
	router := newTestHandler(t, newTestServices(auth, nil)).Init()

	rec := doRequest(router, http.MethodPost, "/login", url.Values{"username": {"bob"}, "password": {"pw"}}, false)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// ─────────────────────────────────────────────
// logout
// ─────────────────────────────────────────────

func TestLogout_EndsCurrentSession(t *testing.T) {
	var endedSession string
	auth := loggedInAuth()
	auth.endSessionFn = func(_ context.Context, sessionID string) error {
		endedSession = sessionID
		return nil
	}
	router := newTestHandler(t, newTestServices(auth, nil)).Init()

	rec := doRequest(router, http.MethodPost, "/logout", url.Values{}, true)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, testSessionID, endedSession)

	cookie := findCookie(rec, sessionCookieName)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)
}

func TestLogout_EndSessionFails(t *testing.T) {
	auth := loggedInAuth()
	auth.endSessionFn = func(_ context.Context, _ string) error {
		return store.ErrSessionStorage
	}
	router := newTestHandler(t, newTestServices(auth, nil)).Init()

	rec := doRequest(router, http.MethodPost, "/logout", url.Values{}, true)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
