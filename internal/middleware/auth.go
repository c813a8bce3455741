package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Novip1906/join/internal/contextkeys"
)

type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*contextkeys.TokenClaims, error)
}

// ErrorWriter renders an error response; the gateway passes its own so that
// auth failures look like every other API error.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// Auth requires an "Authorization: Bearer <token>" header and stores the
// validated claims in the request context.
func Auth(validator TokenValidator, writeError ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := contextkeys.GetLogger(ctx).With(slog.String("middleware", "auth"))

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				log.Debug("authorization header missing")
				writeError(w, r, status.Error(codes.Unauthenticated, "authorization header required"))
				return
			}

			claims, err := validator.ValidateToken(ctx, token)
			if err != nil {
				writeError(w, r, err)
				return
			}

			ctx = contextkeys.WithTokenClaims(ctx, claims)
			log = contextkeys.GetLogger(ctx).With(slog.String("user", claims.Email))
			ctx = contextkeys.WithLogger(ctx, log)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
