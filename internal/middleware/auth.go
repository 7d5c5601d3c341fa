package middleware

import (
	"net/http"
	"os"
	"strings"

	"checkout-be/internal/utils"

	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware extracts the buyer's identity from a bearer token when one
// is supplied. It never rejects the request: checkout works for guests too,
// identity only feeds logging and rate-limit bucketing.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		secret := os.Getenv("JWT_SECRET")
		if authHeader == "" || secret == "" {
			next.ServeHTTP(w, r)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			next.ServeHTTP(w, r)
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if uid, ok := claims["user_id"].(float64); ok {
				email, _ := claims["email"].(string)
				ctx := utils.SetUserContext(r.Context(), uint(uid), email)
				r = r.WithContext(ctx)
			}
		}

		next.ServeHTTP(w, r)
	})
}
