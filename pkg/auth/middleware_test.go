package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAuthMiddleware(t *testing.T) {
	jwtService := &JWTService{}

	tests := []struct {
		name         string
		authHeader   func() string
		expectedCode int
		expectedID   int
	}{
		{
			name: "Valid token passes through",
			authHeader: func() string {
				token, _ := jwtService.GenerateJWT(42, false, time.Now().Add(time.Hour))
				return "Bearer " + token
			},
			expectedCode: http.StatusOK,
			expectedID:   42,
		},
		{
			name:         "Missing header",
			authHeader:   func() string { return "" },
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "Missing bearer prefix",
			authHeader:   func() string { return "some-token" },
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "Garbage token",
			authHeader:   func() string { return "Bearer not.a.token" },
			expectedCode: http.StatusUnauthorized,
		},
		{
			name: "Expired token",
			authHeader: func() string {
				token, _ := jwtService.GenerateJWT(42, false, time.Now().Add(-time.Hour))
				return "Bearer " + token
			},
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID int
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotID, _ = r.Context().Value(UserIDKey).(int)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest("GET", "/api/points", nil)
			if header := tt.authHeader(); header != "" {
				req.Header.Set("Authorization", header)
			}
			rr := httptest.NewRecorder()

			AuthMiddleware(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode == http.StatusOK {
				assert.Equal(t, tt.expectedID, gotID)
			}
		})
	}
}

func TestAdminMiddleware(t *testing.T) {
	tests := []struct {
		name         string
		ctx          func() context.Context
		expectedCode int
	}{
		{
			name: "Admin allowed",
			ctx: func() context.Context {
				return context.WithValue(context.Background(), IsAdminKey, true)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Non-admin forbidden",
			ctx: func() context.Context {
				return context.WithValue(context.Background(), IsAdminKey, false)
			},
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "Missing claim forbidden",
			ctx:          context.Background,
			expectedCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest("GET", "/api/users", nil).WithContext(tt.ctx())
			rr := httptest.NewRecorder()

			AdminMiddleware(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}
