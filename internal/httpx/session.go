package httpx

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/nandanicollection/storefront/internal/redisx"
)

const sessionCookie = "storefront_sid"

type sessionKey struct{}

// WithSession assigns every visitor a session id cookie. The id scopes the
// bag, wishlist and applied coupon in Redis; the cookie lifetime matches the
// session TTL so both expire together.
func WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := ""
		if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
			sid = c.Value
		}
		if sid == "" {
			sid = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sid,
				Path:     "/",
				MaxAge:   int(redisx.TTLSession.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, sid)))
	})
}

func SessionID(r *http.Request) string {
	sid, _ := r.Context().Value(sessionKey{}).(string)
	return sid
}
