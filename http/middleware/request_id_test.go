package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xy-planning-network/writium"
	"github.com/xy-planning-network/writium/http/middleware"
)

func TestRequestID(t *testing.T) {
	// Arrange
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	var actual string

	// Act
	middleware.RequestID()(http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) {
		val, ok := rx.Context().Value(writium.RequestIDKey).(string)
		require.True(t, ok)
		actual = val
	})).ServeHTTP(w, r)

	// Assert
	require.NotZero(t, actual)
	require.Equal(t, actual, w.Header().Get(middleware.RequestIDHeader))
}
