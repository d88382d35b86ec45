package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/taskdeck-api/internal/config"
	"github.com/phrazzld/taskdeck-api/internal/service/auth"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestMiddleware(t *testing.T) (*AuthMiddleware, auth.JWTService) {
	t.Helper()
	jwtService, err := auth.NewJWTService(config.AuthConfig{JWTSecret: testSecret})
	require.NoError(t, err)
	return NewAuthMiddleware(jwtService), jwtService
}

func TestAuthenticateValidToken(t *testing.T) {
	t.Parallel()

	m, jwtService := newTestMiddleware(t)
	userID := uuid.New()
	token, err := jwtService.GenerateToken(context.Background(), userID)
	require.NoError(t, err)

	var gotUserID uuid.UUID
	var gotOK bool
	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, gotOK = GetUserID(r)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.True(t, gotOK)
	assert.Equal(t, userID, gotUserID)
}

func TestAuthenticateRejections(t *testing.T) {
	t.Parallel()

	m, _ := newTestMiddleware(t)
	otherService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret: "ffffffffffffffffffffffffffffffff",
	})
	require.NoError(t, err)
	foreignToken, err := otherService.GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"malformed token", "Bearer not.a.token"},
		{"wrong signature", "Bearer " + foreignToken},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("handler must not run for unauthenticated request")
			}))

			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}
