package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/sixlab/storefront/pkg/utils"
)

const adminSecretHeader = "x-admin-secret"

// AdminAuth guards lifecycle endpoints with the shared operator secret.
func AdminAuth(secret string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(adminSecretHeader)
			if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
				utils.WriteError(w, "UNAUTHORIZED", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
