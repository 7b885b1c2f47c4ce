package middleware

import (
	"net/http"
	"strings"

	"noion/internal/auth"
	"noion/internal/httputil"
)

// Session populates the request context with the principal carried by the
// session cookie or a bearer token. It never rejects: the page/block API is
// userId-parameterized and identity is advisory.
func Session(sessions *auth.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := sessionToken(r); token != "" {
				if principal, err := sessions.Verify(token); err == nil {
					r = httputil.WithPrincipal(r, principal)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func sessionToken(r *http.Request) string {
	if c, err := r.Cookie(auth.SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}
