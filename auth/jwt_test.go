package auth

import (
	"net/url"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"

	"github.com/xy-planning-network/writium"
)

func TestNewService(t *testing.T) {
	// Act
	s, err := NewService("")

	// Assert
	require.Nil(t, s)
	require.ErrorIs(t, err, writium.ErrBadConfig)
}

func TestServiceIssueAuthenticate(t *testing.T) {
	// Arrange
	s, err := NewService("secret", WithTTL(time.Hour))
	require.Nil(t, err)

	// Act
	token, err := s.Issue("editor@example.com", "admin")
	require.Nil(t, err)
	claims, err := s.Authenticate(token)

	// Assert
	require.Nil(t, err)
	require.Equal(t, "editor@example.com", claims.Subject)
	require.Equal(t, "writium", claims.Issuer)
	require.True(t, claims.HasScope("admin"))
	require.True(t, claims.HasScope(""))
	require.False(t, claims.HasScope("root"))
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestServiceAuthenticateNotValid(t *testing.T) {
	// Arrange
	s, err := NewService("secret")
	require.Nil(t, err)

	other, err := NewService("other")
	require.Nil(t, err)
	otherToken, err := other.Issue("someone")
	require.Nil(t, err)

	foreign, err := NewService("secret", WithIssuer("someone-else"))
	require.Nil(t, err)
	foreignToken, err := foreign.Issue("someone")
	require.Nil(t, err)

	expired, err := NewService("secret", WithTTL(time.Minute))
	require.Nil(t, err)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	expiredToken, err := expired.Issue("someone")
	require.Nil(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Issuer: "writium"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.Nil(t, err)

	tcs := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.token"},
		{"other-key", otherToken},
		{"other-issuer", foreignToken},
		{"expired", expiredToken},
		{"none-alg", none},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			claims, err := s.Authenticate(tc.token)

			// Assert
			require.Nil(t, claims)
			require.ErrorIs(t, err, writium.ErrNotValid)
		})
	}
}

func TestServiceAuthenticateJWT(t *testing.T) {
	// Arrange
	s, err := NewService("secret")
	require.Nil(t, err)
	token, err := s.Issue("reader")
	require.Nil(t, err)

	// Act
	_, missing := s.AuthenticateJWT(url.Values{})
	claims, err := s.AuthenticateJWT(url.Values{"jwt": {token}})

	// Assert
	require.ErrorIs(t, missing, writium.ErrNotValid)
	require.Nil(t, err)
	require.Equal(t, "reader", claims.Subject)
}

func TestBearer(t *testing.T) {
	tcs := []struct {
		header   string
		expected string
		ok       bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer  abc ", "abc", true},
		{"Basic abc", "", false},
		{"abc", "", false},
		{"", "", false},
	}

	for _, tc := range tcs {
		t.Run(tc.header, func(t *testing.T) {
			actual, err := bearer(tc.header)
			require.Equal(t, tc.ok, err == nil)
			require.Equal(t, tc.expected, actual)
		})
	}
}
