package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/api/handlers"
)

// RateLimit ограничивает запросы с одного IP
// При сбое лимитера запрос пропускается
func RateLimit(limiter RateLimiter, m Metrics, logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			allowed, err := limiter.Allow(r.Context(), ip)
			if err != nil {
				logger.Error("RateLimit: limiter failed for ip=%s: %v", ip, err)
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				route := routeTemplate(r)
				logger.Warn("RateLimit: ip=%s exceeded limit on %s %s", ip, r.Method, route)
				m.IncRateLimited(route)
				handlers.RespondTooManyRequests(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-Ip"); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
