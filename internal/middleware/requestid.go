package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/jaekwang-park/doit-client/internal/api"
)

const maxRequestIDLen = 128

// RequestID keeps an incoming X-Request-ID or assigns a new one. The ID is
// stored in the context, echoed in the response and left on the request
// headers so the API proxy forwards it to the backend.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(api.RequestIDHeader)
			if id == "" || len(id) > maxRequestIDLen {
				id = uuid.NewString()
				r.Header.Set(api.RequestIDHeader, id)
			}
			w.Header().Set(api.RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(SetRequestID(r.Context(), id)))
		})
	}
}
