package transport

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/muhammadheryan/stock-coordinator/constant"
	"github.com/muhammadheryan/stock-coordinator/utils/errors"
)

// serviceClaims carries the standard claims plus the optional shopper id the
// order service forwards on behalf of the end user.
type serviceClaims struct {
	UserID uint64 `json:"user_id,omitempty"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates the HS256 service token issued to calling services.
// The token subject becomes the actor id recorded on audit movements.
func AuthMiddleware(secret string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Public paths
			path := r.URL.Path
			if isPublicPath(path) {
				next.ServeHTTP(w, r)
				return
			}

			// Check Authorization header
			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}
			tokenStr := strings.TrimPrefix(auth, "Bearer ")

			claims := serviceClaims{}
			token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid || claims.Subject == "" {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}

			// Embed actor id into context
			ctx := context.WithValue(r.Context(), constant.ActorIDKey, claims.Subject)
			if claims.UserID > 0 {
				ctx = context.WithValue(ctx, constant.UserIDKey, claims.UserID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// isPublicPath defines which endpoints skip the service token check. Internal
// routes carry their own API-key middleware.
func isPublicPath(path string) bool {
	return strings.HasPrefix(path, "/swagger/") || strings.HasPrefix(path, "/internal/")
}
