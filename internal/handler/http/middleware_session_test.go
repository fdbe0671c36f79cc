package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-todo-keeper/internal/service"
	"github.com/MKhiriev/go-todo-keeper/internal/utils"
	"github.com/MKhiriev/go-todo-keeper/models"
)

// executeLoadSession runs loadSession with the given cookie value (none when
// empty) and reports what the next handler saw.
func executeLoadSession(t *testing.T, auth *mockAuthService, cookieValue string) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	h := newTestHandler(t, newTestServices(auth, nil))

	var captured *http.Request
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	if cookieValue != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: cookieValue})
	}

	rec := httptest.NewRecorder()
	h.loadSession(next).ServeHTTP(rec, req)
	require.NotNil(t, captured, "next handler must always be called")

	return rec, captured
}

func TestLoadSession_NoCookie(t *testing.T) {
	called := false
	auth := &mockAuthService{
		parseSessionFn: func(_ context.Context, _ string) (models.Token, error) {
			called = true
			return models.Token{}, nil
		},
	}

	rec, r := executeLoadSession(t, auth, "")

	assert.False(t, called)
	_, ok := utils.GetUserIDFromContext(r.Context())
	assert.False(t, ok)
	assert.Empty(t, rec.Header().Values("Set-Cookie"))
}

func TestLoadSession_ValidCookie(t *testing.T) {
	rec, r := executeLoadSession(t, loggedInAuth(), testSessionToken)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	require.True(t, ok)
	assert.Equal(t, testUserID, userID)

	sessionID, ok := utils.GetSessionIDFromContext(r.Context())
	require.True(t, ok)
	assert.Equal(t, testSessionID, sessionID)

	assert.Empty(t, rec.Header().Values("Set-Cookie"))
}

func TestLoadSession_RejectedCookieIsCleared(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"expired or invalid", service.ErrSessionIsExpiredOrInvalid},
		{"storage failure", errors.Join(service.ErrSessionIsExpiredOrInvalid, errors.New("redis down"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &mockAuthService{
				parseSessionFn: func(_ context.Context, _ string) (models.Token, error) {
					return models.Token{}, tt.err
				},
			}

			rec, r := executeLoadSession(t, auth, "stale-token")

			_, ok := utils.GetUserIDFromContext(r.Context())
			assert.False(t, ok)

			cookie := findCookie(rec, sessionCookieName)
			require.NotNil(t, cookie)
			assert.Empty(t, cookie.Value)
			assert.Less(t, cookie.MaxAge, 0)
		})
	}
}

func TestRequireSession(t *testing.T) {
	h := newTestHandler(t, newTestServices(nil, nil))
	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	})

	t.Run("anonymous is redirected with next", func(t *testing.T) {
		nextCalled = false
		req := httptest.NewRequest(http.MethodGet, "/todos/5?tab=memo", nil)
		rec := httptest.NewRecorder()

		h.requireSession(next).ServeHTTP(rec, req)

		assert.False(t, nextCalled)
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login?next=%2Ftodos%2F5%3Ftab%3Dmemo", rec.Header().Get("Location"))
	})

	t.Run("logged in user passes", func(t *testing.T) {
		nextCalled = false
		req := httptest.NewRequest(http.MethodGet, "/todos", nil)
		req = req.WithContext(context.WithValue(req.Context(), utils.UserIDCtxKey, testUserID))
		rec := httptest.NewRecorder()

		h.requireSession(next).ServeHTTP(rec, req)

		assert.True(t, nextCalled)
	})
}
