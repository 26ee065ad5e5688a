package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/xy-planning-network/writium"
)

// RequestIDHeader is the response header echoing the ID RequestID assigns.
const RequestIDHeader = "X-Request-Id"

// RequestID adds a uuid to the request context under writium.RequestIDKey
// and echoes it in the RequestIDHeader of the response.
func RequestID() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := uuid.NewString()
			w.Header().Set(RequestIDHeader, id)
			ctx := context.WithValue(r.Context(), writium.RequestIDKey, id)
			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}
