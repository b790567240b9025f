package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pimsph/registry-backend/internal/auth"
	"github.com/pimsph/registry-backend/internal/metrics"
	"github.com/pimsph/registry-backend/internal/utils"
	"github.com/pimsph/registry-backend/internal/web"
	"go.uber.org/zap"
)

// TokenMiddleware gates protected routes behind bearer-token verification.
// Authentication failures stop the request before any business logic runs.
func TokenMiddleware(verifier auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				web.Unauthorized(w, "No token provided")
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			principal, err := verifier.Verify(token)
			if err != nil {
				web.Unauthorized(w, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), utils.ContextPrincipalKey, principal.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods",
			"GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// RequestLogger logs one line per request with a generated request id and
// feeds the Prometheus request instruments.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		requestID := uuid.NewString()

		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		metrics.ObserveRequest(r.URL.Path, fmt.Sprintf("%d", rec.status), elapsed.Seconds())
		zap.L().Info("request",
			zap.String("id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", elapsed),
		)
	})
}
