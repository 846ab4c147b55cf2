package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const identityCookie = "userId"

// DefaultIdentityTTL matches the sub-minute lifetime of the browser-side
// issuance path. The two paths are independent: the server never reads
// this cookie on submit, it trusts the id in the request body.
const DefaultIdentityTTL = 60 * time.Second

// Identity issues a visitor cookie when none is present. The cookie
// expires after ttl; a non-positive ttl falls back to DefaultIdentityTTL.
func Identity(ttl time.Duration) func(http.Handler) http.Handler {
	if ttl <= 0 {
		ttl = DefaultIdentityTTL
	}
	maxAge := int(ttl.Seconds())

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cookie, err := r.Cookie(identityCookie); err == nil && cookie.Value != "" {
				log.Printf("Returning visitor with ID: %s", cookie.Value)
			} else {
				id := uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     identityCookie,
					Value:    id,
					MaxAge:   maxAge,
					HttpOnly: true,
					Path:     "/",
				})
				log.Printf("New visitor with ID: %s", id)
			}

			next.ServeHTTP(w, r)
		})
	}
}
