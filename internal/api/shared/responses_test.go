package shared

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogs swaps the default slog logger for one writing into the
// returned builder, restoring it when the test ends.
func captureLogs(t *testing.T) *strings.Builder {
	t.Helper()
	var buf strings.Builder
	old := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
	t.Cleanup(func() { slog.SetDefault(old) })
	return &buf
}

func TestRespondWithJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	w := httptest.NewRecorder()

	RespondWithJSON(w, req, http.StatusCreated, map[string]interface{}{
		"title":     "write report",
		"completed": false,
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "write report", body["title"])
	assert.Equal(t, false, body["completed"])
}

func TestRespondWithJSONEncodingFailure(t *testing.T) {
	logs := captureLogs(t)

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	w := httptest.NewRecorder()

	// Channels cannot be JSON-encoded; the status is already written by then.
	RespondWithJSON(w, req, http.StatusOK, map[string]interface{}{"ch": make(chan int)})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, logs.String(), "failed to encode JSON response")
}

func TestRespondWithError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req = req.WithContext(WithTraceID(req.Context(), "trace-1"))
	w := httptest.NewRecorder()

	RespondWithError(w, req, http.StatusNotFound, "Task not found")

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Task not found", body.Error)
	assert.Equal(t, "trace-1", body.TraceID)
}

func TestRespondWithErrorOmitsAbsentTraceID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	w := httptest.NewRecorder()

	RespondWithError(w, req, http.StatusUnauthorized, "Invalid token")

	assert.NotContains(t, w.Body.String(), "trace_id")
}

func TestRespondWithErrorAndLog(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{"server error logs at ERROR", http.StatusInternalServerError, "level=ERROR"},
		{"client error logs at DEBUG", http.StatusBadRequest, "level=DEBUG"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			logs := captureLogs(t)

			req := httptest.NewRequest(http.MethodPatch, "/tasks/abc", nil)
			req = req.WithContext(WithTraceID(context.Background(), "trace-2"))
			w := httptest.NewRecorder()

			err := errors.New("pq: connection to db.internal.example:5432 refused")
			RespondWithErrorAndLog(w, req, tc.status, "Something went wrong", err)

			assert.Equal(t, tc.status, w.Code)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "Something went wrong", body.Error)
			assert.Equal(t, "trace-2", body.TraceID)

			// The raw error stays out of the response body entirely.
			assert.NotContains(t, w.Body.String(), "5432")

			out := logs.String()
			assert.Contains(t, out, tc.wantLevel)
			assert.Contains(t, out, "trace_id=trace-2")
			assert.Contains(t, out, "error_type=")
			assert.NotContains(t, out, "db.internal.example:5432", "logged error must be redacted")
		})
	}
}
