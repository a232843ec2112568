package http

import (
	"net"
	"net/http"
	"strconv"

	"home-loan-calculator/logging"
)

func RateLimitMiddleware(
	limiter *RateLimiter,
	logger *logging.Logger,
	next http.Handler,
) http.Handler {

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !limiter.Allow(ip) {
			logger.Warn("rate limit exceeded", logging.FieldClientIP, ip, logging.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", strconv.Itoa(int(limiter.RetryAfter().Seconds())))
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
