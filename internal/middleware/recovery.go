package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"noion/internal/httputil"
)

// Recovery turns a handler panic into a logged 500 response so one bad
// request cannot take the process down. The panic value and stack go to the
// log; the client only sees the generic error shape.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if v := recover(); v != nil {
					logger.Error("panic recovered",
						"panic", v,
						"method", r.Method,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)
					httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
