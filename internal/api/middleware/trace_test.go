package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/taskdeck-api/internal/api/shared"
)

func TestTraceMiddlewareMintsID(t *testing.T) {
	t.Parallel()

	var got string
	handler := TraceMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = shared.GetTraceID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.NotEmpty(t, got)
}

func TestTraceMiddlewareReusesChiRequestID(t *testing.T) {
	t.Parallel()

	var gotTrace, gotReqID string
	handler := chimiddleware.RequestID(TraceMiddleware(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			gotTrace = shared.GetTraceID(r.Context())
			gotReqID = chimiddleware.GetReqID(r.Context())
		})))

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NotEmpty(t, gotReqID)
	assert.Equal(t, gotReqID, gotTrace)
}
