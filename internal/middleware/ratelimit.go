package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/sixlab/storefront/internal/ratelimit"
	"github.com/sixlab/storefront/pkg/utils"
)

// RateLimit applies the sliding-window limiter per client address.
// Limit/remaining/reset headers are set on every response that went
// through the limiter, not only on rejections.
func RateLimit(logger *slog.Logger, limiter ratelimit.Limiter, scope string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := scope + ":" + clientIP(r)

			res, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.Error("rate limiter failed", slog.Any("error", err))
				utils.WriteError(w, "SERVER_ERROR", http.StatusInternalServerError)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(res.Reset.Unix(), 10))

			if !res.Allowed {
				utils.WriteError(w, "RATE_LIMITED", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP prefers proxy headers so limits follow the real caller
// behind the load balancer.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first, _, ok := strings.Cut(xff, ","); ok {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(xff)
	}
	if rip := r.Header.Get("X-Real-Ip"); rip != "" {
		return rip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
