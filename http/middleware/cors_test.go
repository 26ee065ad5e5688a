package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xy-planning-network/writium/http/middleware"
)

func TestCORS(t *testing.T) {
	// Arrange + Act
	actual := middleware.CORS()

	// Assert
	require.Equal(t, fmt.Sprintf("%p", middleware.NoopAdapter), fmt.Sprintf("%p", actual))

	// Arrange
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com/articles", nil)
	r.Header.Set("Origin", "https://reader.example.com")

	// Act
	middleware.CORS("https://admin.example.com", "https://reader.example.com")(noopHandler()).ServeHTTP(w, r)

	// Assert
	require.Equal(t, "https://reader.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}
