// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gunzip(t *testing.T, data []byte) string {
	t.Helper()

	reader, err := gzip.NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer reader.Close()

	plain, err := io.ReadAll(reader)
	require.NoError(t, err)

	return string(plain)
}

func gzipBytes(t *testing.T, plain string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write([]byte(plain))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return buf.Bytes()
}

func TestWithGZip_Responses(t *testing.T) {
	const page = "<h1>3 Current Todos</h1>"

	tests := []struct {
		name           string
		method         string
		acceptEncoding string
		handler        http.HandlerFunc
		wantStatus     int
		wantGzipped    bool
		wantBody       string
	}{
		{
			name:           "implicit 200 is compressed",
			method:         http.MethodGet,
			acceptEncoding: "gzip",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(page))
			},
			wantStatus:  http.StatusOK,
			wantGzipped: true,
			wantBody:    page,
		},
		{
			name:           "explicit status is compressed",
			method:         http.MethodGet,
			acceptEncoding: "deflate, gzip;q=1.0, br",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte("Not Found"))
			},
			wantStatus:  http.StatusNotFound,
			wantGzipped: true,
			wantBody:    "Not Found",
		},
		{
			name:           "client without gzip gets plain body",
			method:         http.MethodGet,
			acceptEncoding: "",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(page))
			},
			wantStatus: http.StatusOK,
			wantBody:   page,
		},
		{
			name:           "no content is not compressed",
			method:         http.MethodPost,
			acceptEncoding: "gzip",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:           "head is not compressed",
			method:         http.MethodHead,
			acceptEncoding: "gzip",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/todos", nil)
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}
			rec := httptest.NewRecorder()

			withGZip(tt.handler).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantGzipped {
				assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
				assert.Equal(t, tt.wantBody, gunzip(t, rec.Body.Bytes()))
				return
			}
			assert.Empty(t, rec.Header().Get("Content-Encoding"))
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestWithGZip_SetsVary(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()

	withGZip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).ServeHTTP(rec, req)

	assert.Equal(t, "Accept-Encoding", rec.Header().Get("Vary"))
}

func TestWithGZip_RedirectIsCompressed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/todos/new", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()

	withGZip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/todos", http.StatusSeeOther)
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/todos", rec.Header().Get("Location"))
	assert.Equal(t, "", gunzip(t, rec.Body.Bytes()))
}

func TestWithGZip_DecompressesRequestBody(t *testing.T) {
	const form = "title=Buy+milk&important=on"

	var gotBody string
	var gotEncoding string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, r.Body.Close())
		gotBody = string(b)
		gotEncoding = r.Header.Get("Content-Encoding")
	})

	req := httptest.NewRequest(http.MethodPost, "/todos/new", bytes.NewReader(gzipBytes(t, form)))
	req.Header.Set("Content-Encoding", "gzip")
	rec := httptest.NewRecorder()

	withGZip(handler).ServeHTTP(rec, req)

	assert.Equal(t, form, gotBody)
	assert.Empty(t, gotEncoding)
}

func TestWithGZip_InvalidRequestBody(t *testing.T) {
	called := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodPost, "/todos/new", strings.NewReader("definitely not gzip"))
	req.Header.Set("Content-Encoding", "gzip")
	rec := httptest.NewRecorder()

	withGZip(handler).ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBodyAllowedForStatus(t *testing.T) {
	assert.True(t, bodyAllowedForStatus(http.StatusOK))
	assert.True(t, bodyAllowedForStatus(http.StatusSeeOther))
	assert.True(t, bodyAllowedForStatus(http.StatusInternalServerError))
	assert.False(t, bodyAllowedForStatus(http.StatusContinue))
	assert.False(t, bodyAllowedForStatus(http.StatusNoContent))
	assert.False(t, bodyAllowedForStatus(http.StatusNotModified))
}
