package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"

	"givebridge/cache"

	"github.com/rs/zerolog/hlog"
)

// Limiter is satisfied by cache.Cache.
type Limiter interface {
	Allow(ctx context.Context, scope, ip string, ratePerSecond, burst int) (*cache.RateLimitResult, error)
}

// RateLimit throttles requests per client IP within scope. A nil limiter disables it.
func RateLimit(limiter Limiter, scope string, ratePerSecond, burst int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := limiter.Allow(r.Context(), scope, clientIP(r), ratePerSecond, burst)
			if err != nil {
				hlog.FromRequest(r).Warn().Err(err).Str("scope", scope).Msg("rate limiter unavailable")
			}
			if err == nil && res != nil {
				w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))
			}
			if res != nil && !res.Allowed {
				w.Header().Set("Retry-After", strconv.Itoa(int(res.RetryAfter.Seconds())))
				writeError(w, http.StatusTooManyRequests, "Too many requests, please try again later.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
