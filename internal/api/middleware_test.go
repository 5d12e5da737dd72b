package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"shoppergpt-backend/internal/services"
)

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func newAuthTestService(cfg services.AdminConfig) *services.AdminService {
	// The middleware paths never touch storage.
	return services.NewAdminService(nil, cfg, zap.NewNop())
}

func TestAdminAuthMiddleware(t *testing.T) {
	cfg := services.AdminConfig{
		Username:        "admin",
		Password:        "s3cret",
		JWTSecret:       "jwt-signing-key",
		TokenExpiration: time.Hour,
	}
	svc := newAuthTestService(cfg)

	validToken, _, err := svc.Login(context.Background(), "admin", "s3cret")
	if err != nil {
		t.Fatalf("minting token: %v", err)
	}

	tests := []struct {
		name       string
		decorate   func(*http.Request)
		svc        *services.AdminService
		wantStatus int
		wantCalled bool
	}{
		{
			name:       "valid basic credentials",
			decorate:   func(r *http.Request) { r.SetBasicAuth("admin", "s3cret") },
			svc:        svc,
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:       "wrong basic credentials",
			decorate:   func(r *http.Request) { r.SetBasicAuth("admin", "wrong") },
			svc:        svc,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid bearer token",
			decorate:   func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+validToken) },
			svc:        svc,
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:       "garbage bearer token",
			decorate:   func(r *http.Request) { r.Header.Set("Authorization", "Bearer nonsense") },
			svc:        svc,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "no credentials",
			decorate:   func(r *http.Request) {},
			svc:        svc,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unconfigured admin surface",
			decorate:   func(r *http.Request) { r.SetBasicAuth("admin", "s3cret") },
			svc:        newAuthTestService(services.AdminConfig{}),
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, called := okHandler()
			handler := AdminAuthMiddleware(tt.svc, zap.NewNop())(next)

			req := httptest.NewRequest(http.MethodGet, "/admin/api/users", nil)
			tt.decorate(req)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if *called != tt.wantCalled {
				t.Errorf("next handler called = %v, want %v", *called, tt.wantCalled)
			}
		})
	}
}
