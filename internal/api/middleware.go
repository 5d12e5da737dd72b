package api

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"shoppergpt-backend/internal/services"
	"shoppergpt-backend/pkg/httputil"
)

// AdminAuthMiddleware guards the admin API. It accepts HTTP Basic credentials
// matching the configured admin pair, or a Bearer token minted by
// /admin/login. When admin credentials are unconfigured the whole surface
// degrades to 503 instead of crashing or silently opening up.
func AdminAuthMiddleware(adminSvc *services.AdminService, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !adminSvc.Enabled() {
				httputil.RespondError(w, http.StatusServiceUnavailable, "Admin API is not configured")
				return
			}

			if username, password, ok := r.BasicAuth(); ok {
				if adminSvc.CheckCredentials(username, password) {
					next.ServeHTTP(w, r)
					return
				}
				logger.Warn("admin basic auth rejected", zap.String("username", username))
				w.Header().Set("WWW-Authenticate", `Basic realm="admin"`)
				httputil.RespondError(w, http.StatusUnauthorized, "Incorrect username or password")
				return
			}

			authHeader := r.Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				w.Header().Set("WWW-Authenticate", `Basic realm="admin"`)
				httputil.RespondError(w, http.StatusUnauthorized, "Authorization required")
				return
			}

			if _, err := adminSvc.ParseToken(parts[1]); err != nil {
				logger.Warn("admin token rejected", zap.Error(err))
				httputil.RespondError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
