package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Novip1906/join/internal/contextkeys"
)

const RequestIDHeader = "X-Request-Id"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Logging puts a request-scoped logger and request id into the context and
// logs every request once it completes. An incoming X-Request-Id is reused.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)

			log := logger.With(
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("request_id", requestID),
			)

			ctx := contextkeys.WithLogger(r.Context(), log)
			ctx = contextkeys.WithRequestID(ctx, requestID)

			log.Debug("request started")

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r.WithContext(ctx))

			attributes := []any{
				slog.Duration("duration", time.Since(start)),
				slog.Int("status", rec.status),
			}

			if rec.status >= http.StatusInternalServerError {
				log.Error("request failed", attributes...)
			} else {
				log.Info("request completed", attributes...)
			}
		})
	}
}
