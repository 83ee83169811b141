package middleware

import (
	"net/http"

	"golang.org/x/time/rate"

	"github.com/dgarza/barberbook/internal/api/handlers"
)

// RateLimit rejects requests over the configured rate with 429.
// One shared limiter for the public surface; per-client fairness is the
// gateway's concern.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				handlers.RespondError(w, http.StatusTooManyRequests, "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
