package web

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Lamecke/frontend-ecommerce/internal/store"
)

// RequestLogger logs method, path, status and latency for every request.
func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.status),
				zap.Duration("took", time.Since(start)))
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// RequireSession rejects anonymous requests, like the login redirect on gated
// pages.
func RequireSession(auth *store.Auth, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := auth.Current(); !ok {
				respondError(w, http.StatusUnauthorized, "please sign in first", logger)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin gates the admin console routes.
func RequireAdmin(auth *store.Auth, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !auth.IsAdmin() {
				respondError(w, http.StatusForbidden, "admin access required", logger)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
