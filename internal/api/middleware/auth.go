package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dgarza/barberbook/internal/api/handlers"
)

// HeaderUserID carries the authenticated user id, set by the API gateway
const HeaderUserID = "X-User-ID"

type userIDKey struct{}

// Auth requires a valid X-User-ID header and stores the id in the request
// context. Protected routes sit behind this middleware.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderUserID)
		if raw == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "missing "+HeaderUserID+" header")
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, "invalid "+HeaderUserID+" header")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID extracts the authenticated user id from the context. The second
// return is false outside the Auth middleware.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey{}).(int64)
	return id, ok
}
