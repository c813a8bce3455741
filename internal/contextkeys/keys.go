package contextkeys

import (
	"context"
	"log/slog"
)

type contextKey string

const (
	RequestIDKey   contextKey = "request_id"
	LoggerKey      contextKey = "logger"
	TokenClaimsKey contextKey = "token_claims"
)

type TokenClaims struct {
	TokenId   string `json:"jti"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Initials  string `json:"initials"`
	Guest     bool   `json:"guest"`
	ExpiresAt int64  `json:"exp"`
}

func WithTokenClaims(ctx context.Context, claims *TokenClaims) context.Context {
	return context.WithValue(ctx, TokenClaimsKey, claims)
}

func GetTokenClaims(ctx context.Context) (*TokenClaims, bool) {
	claims, ok := ctx.Value(TokenClaimsKey).(*TokenClaims)
	return claims, ok
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(LoggerKey).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// GetLoggerOr returns the request logger, or fallback when the context has none.
func GetLoggerOr(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*slog.Logger); ok {
		return logger
	}
	if fallback != nil {
		return fallback
	}
	return slog.Default()
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(RequestIDKey).(string)
	return id, ok
}
