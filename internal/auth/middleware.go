package auth

import (
	"context"
	"net/http"
)

// contextKey is an unexported type for context keys in this package.
// A package-private key type means no other package can read or shadow the
// userID we store in the request context.
type contextKey string

const userIDKey contextKey = "userID"

// unauthorizedBody is the one and only 401 response. Every protected route
// produces exactly this, before any handler logic runs, so a probing client
// learns nothing from the shape of the refusal.
const unauthorizedBody = `{"message":"Unauthorized"}`

// RequireAuth enforces authentication on protected routes.
//
// It reads the JWT from the "token" HttpOnly cookie, validates it, and
// stores the userID in the request context. Missing or invalid token →
// 401 with the uniform body, request chain stopped.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := extractUserID(r, tokens)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(unauthorizedBody))
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext retrieves the authenticated user's ID from the request
// context. Returns ("", false) if the request never went through
// RequireAuth.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// WithUserID returns a context carrying the given user id.
// Used by handler tests to simulate an authenticated request without
// minting a real token.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// extractUserID reads the JWT cookie and validates it.
func extractUserID(r *http.Request, tokens *TokenService) (string, error) {
	cookie, err := r.Cookie("token")
	if err != nil {
		// http.ErrNoCookie — no token, anonymous request
		return "", err
	}

	return tokens.Validate(cookie.Value)
}
