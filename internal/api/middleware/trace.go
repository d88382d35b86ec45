package middleware

import (
	"log/slog"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/taskdeck-api/internal/api/shared"
)

// TraceMiddleware tags every request with a trace ID that error responses
// echo back. When chi's RequestID middleware ran earlier in the chain its ID
// is reused, so the X-Request-Id header, the logs and the error bodies all
// correlate; otherwise a fresh ID is minted.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.WithTraceID(r.Context(), chimiddleware.GetReqID(r.Context()))

		slog.Debug("request started",
			slog.String("trace_id", shared.GetTraceID(ctx)),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
