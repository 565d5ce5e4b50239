package rest

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const clerkIDKey = contextKey("clerkID")

// ClerkIDFromContext returns the authenticated caller's external
// identity id set by AuthMiddleware.
func ClerkIDFromContext(ctx context.Context) (string, bool) {
	clerkID, ok := ctx.Value(clerkIDKey).(string)
	return clerkID, ok
}

// AuthMiddleware validates the Bearer token and puts the caller's
// clerk id (the token subject) into the request context.
func AuthMiddleware(jwtSecret string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				WriteJSONError(w, http.StatusUnauthorized, "Authorization header is missing")
				return
			}

			tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found {
				WriteJSONError(w, http.StatusUnauthorized, "Authorization header must be a Bearer token")
				return
			}

			token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				WriteJSONError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			subject, err := token.Claims.GetSubject()
			if err != nil || subject == "" {
				WriteJSONError(w, http.StatusUnauthorized, "Token has no subject")
				return
			}

			ctx := context.WithValue(r.Context(), clerkIDKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
