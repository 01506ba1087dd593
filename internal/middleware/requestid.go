package middleware

import (
	"net/http"

	"github.com/oklog/ulid/v2"

	"kh-portfolio/internal/httpx"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags each request with a ULID, or the caller's id when it sends
// one, and echoes it back.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(requestIDHeader)
			if id == "" || len(id) > 64 {
				id = ulid.Make().String()
			}
			w.Header().Set(requestIDHeader, id)
			ctx := httpx.WithRequestID(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
