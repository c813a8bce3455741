package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"

	"github.com/Novip1906/join/internal/config"
	"github.com/Novip1906/join/internal/contextkeys"
	"github.com/Novip1906/join/pkg/logging"
)

type RateLimiter struct {
	limiter *redis_rate.Limiter
	limit   redis_rate.Limit
}

func NewRateLimiter(rdb *redis.Client, rateLimiterCfg *config.RateLimiter) *RateLimiter {
	burst := rateLimiterCfg.Burst
	if burst < rateLimiterCfg.RPS {
		burst = rateLimiterCfg.RPS
	}
	return &RateLimiter{
		limiter: redis_rate.NewLimiter(rdb),
		limit: redis_rate.Limit{
			Rate:   rateLimiterCfg.RPS,
			Burst:  burst,
			Period: time.Second,
		},
	}
}

// Middleware limits requests per client IP. When Redis is unreachable the
// request is let through.
func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := contextkeys.GetLogger(ctx)

			ip := clientIP(r)
			key := fmt.Sprintf("rate_limit:%s", ip)

			res, err := rl.limiter.Allow(ctx, key, rl.limit)
			if err != nil {
				log.Error("redis rate limiter error", logging.Err(err))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.limit.Rate))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.Itoa(int(res.ResetAfter.Seconds())))

			if res.Allowed == 0 {
				log.Warn("rate limit exceeded (redis)",
					slog.String("ip", ip),
					slog.Int("remaining", res.Remaining),
				)
				w.Header().Set("Retry-After", strconv.Itoa(int(res.RetryAfter.Seconds())+1))
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
