package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xy-planning-network/writium"
	"github.com/xy-planning-network/writium/http/middleware"
)

func TestGetIPAddress(t *testing.T) {
	tcs := []struct {
		name     string
		header   http.Header
		expected string
	}{
		{"None", http.Header{}, middleware.UnknownIPAddress},
		{"Forwarded", http.Header{"X-Forwarded-For": {"203.0.113.7"}}, "203.0.113.7"},
		{"Forwarded-Through-Proxy", http.Header{"X-Forwarded-For": {"203.0.113.7, 10.0.0.2"}}, "203.0.113.7"},
		{"Real-Ip", http.Header{"X-Real-Ip": {"198.51.100.3"}}, "198.51.100.3"},
		{"Private", http.Header{"X-Forwarded-For": {"192.168.1.1"}}, middleware.UnknownIPAddress},
		{"Private-Range-End", http.Header{"X-Forwarded-For": {"10.255.255.255"}}, middleware.UnknownIPAddress},
		{"Loopback", http.Header{"X-Real-Ip": {"127.0.0.1"}}, middleware.UnknownIPAddress},
		{"Garbage", http.Header{"X-Forwarded-For": {"not-an-ip"}}, middleware.UnknownIPAddress},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, middleware.GetIPAddress(tc.header))
		})
	}
}

func TestInjectIPAddress(t *testing.T) {
	// Arrange
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.7")
	var actual string

	// Act
	middleware.InjectIPAddress()(http.HandlerFunc(func(_ http.ResponseWriter, rx *http.Request) {
		actual, _ = rx.Context().Value(writium.IpAddrKey).(string)
	})).ServeHTTP(w, r)

	// Assert
	require.Equal(t, "203.0.113.7", actual)
}
