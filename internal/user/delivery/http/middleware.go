package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/iothub/storefront/pkg/auth"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
	EmailKey  contextKey = "email"
	RoleKey   contextKey = "role"
	TokenKey  contextKey = "token"
)

// UserID returns the authenticated user id from the request context,
// or empty for anonymous callers
func UserID(r *http.Request) string {
	id, _ := r.Context().Value(UserIDKey).(string)
	return id
}

// AuthMiddleware validates the bearer token and rejects anonymous callers
func AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, token, ok := claimsFromRequest(r)
		if !ok {
			respondError(w, http.StatusUnauthorized, "Invalid or missing token")
			return
		}
		next.ServeHTTP(w, r.WithContext(contextWithClaims(r.Context(), claims, token)))
	}
}

// OptionalAuthMiddleware attaches identity when a valid token is
// present and lets anonymous requests through. Cart and wishlist work
// for both, keyed differently.
func OptionalAuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if claims, token, ok := claimsFromRequest(r); ok {
			r = r.WithContext(contextWithClaims(r.Context(), claims, token))
		}
		next.ServeHTTP(w, r)
	}
}

// AdminMiddleware checks if the caller has admin role
func AdminMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		role, ok := r.Context().Value(RoleKey).(string)
		if !ok || role != "admin" {
			respondError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func claimsFromRequest(r *http.Request) (*auth.Claims, string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, "", false
	}

	claims, err := auth.ValidateToken(parts[1])
	if err != nil {
		return nil, "", false
	}
	return claims, parts[1], true
}

func contextWithClaims(ctx context.Context, claims *auth.Claims, token string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, EmailKey, claims.Email)
	ctx = context.WithValue(ctx, RoleKey, claims.Role)
	return context.WithValue(ctx, TokenKey, token)
}

// Helper function for error responses
func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
