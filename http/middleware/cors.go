package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
)

// CORS lets the listed origins read articles and, with a bearer token, purge the cache.
// If no origins are listed, NoopAdapter returns and this middleware does nothing.
func CORS(origins ...string) Adapter {
	if len(origins) == 0 {
		return NoopAdapter
	}

	return handlers.CORS(
		handlers.AllowedHeaders([]string{"Accept", "Authorization", "Content-Type"}),
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{
			http.MethodDelete,
			http.MethodGet,
			http.MethodHead,
			http.MethodOptions,
		}),
		handlers.ExposedHeaders([]string{RequestIDHeader, "X-Writium-Latest"}),
	)
}
