package middleware

import (
	"context"
	"net/http"
	"strings"

	helper "github.com/Zeralyxx/BicutanBites-Admin/helper"
)

// Context keys to store user information
type contextKey string

const (
	EmailKey contextKey = "email"
	NameKey  contextKey = "name"
	UidKey   contextKey = "uid"
)

// Authentication validates the bearer token and stashes the admin's
// identity in the request context.
func Authentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientToken := r.Header.Get("Authorization")
		if clientToken == "" {
			http.Error(w, "No Authorization header provided", http.StatusUnauthorized)
			return
		}

		// Token format should be "Bearer <token>"
		tokenParts := strings.Split(clientToken, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			http.Error(w, "Invalid Authorization format", http.StatusUnauthorized)
			return
		}

		claims, errMsg := helper.ValidateToken(tokenParts[1])
		if errMsg != "" {
			http.Error(w, errMsg, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), EmailKey, claims.Email)
		ctx = context.WithValue(ctx, NameKey, claims.Name)
		ctx = context.WithValue(ctx, UidKey, claims.Uid)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserFromContext retrieves user data from the request context
func GetUserFromContext(r *http.Request) (email, name, uid string) {
	email, _ = r.Context().Value(EmailKey).(string)
	name, _ = r.Context().Value(NameKey).(string)
	uid, _ = r.Context().Value(UidKey).(string)
	return
}
