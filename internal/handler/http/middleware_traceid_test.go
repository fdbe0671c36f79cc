package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
)

func executeWithTraceID(t *testing.T, h *Handler, incoming string) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	var captured *http.Request
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
	})

	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	if incoming != "" {
		req.Header.Set(traceIDHeader, incoming)
	}
	rec := httptest.NewRecorder()

	h.withTraceID(next).ServeHTTP(rec, req)
	require.NotNil(t, captured)

	return rec, captured
}

func TestWithTraceID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		wantSame bool
	}{
		{name: "no header", incoming: ""},
		{name: "uuid is reused", incoming: "0191f3f4-7a4e-7c3b-9d2a-1f2e3d4c5b6a", wantSame: true},
		{name: "simple token is reused", incoming: "req_42.retry-1", wantSame: true},
		{name: "spaces are rejected", incoming: "abc def"},
		{name: "control characters are rejected", incoming: "abc\x01"},
		{name: "too long is rejected", incoming: strings.Repeat("a", maxTraceIDLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := executeWithTraceID(t, &Handler{logger: logger.Nop()}, tt.incoming)

			got := rec.Header().Get(traceIDHeader)
			require.NotEmpty(t, got)
			if tt.wantSame {
				assert.Equal(t, tt.incoming, got)
				return
			}
			_, err := uuid.Parse(got)
			assert.NoError(t, err, "generated trace id must be a UUID")
		})
	}
}

func TestWithTraceID_LoggerCarriesTraceID(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

	_, r := executeWithTraceID(t, h, "trace-123")
	logger.FromRequest(r).Info().Msg("hello")

	assert.Contains(t, buf.String(), `"trace_id":"trace-123"`)
}

func TestWithTraceID_DoesNotLeakIntoParentLogger(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

	executeWithTraceID(t, h, "trace-123")
	h.logger.Info().Msg("parent")

	assert.NotContains(t, buf.String(), "trace_id")
}

func TestIsValidTraceID(t *testing.T) {
	assert.True(t, isValidTraceID("a"))
	assert.True(t, isValidTraceID(strings.Repeat("Z", maxTraceIDLength)))
	assert.False(t, isValidTraceID(""))
	assert.False(t, isValidTraceID("a/b"))
	assert.False(t, isValidTraceID("ünicode"))
}
