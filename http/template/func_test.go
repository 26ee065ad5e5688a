package template

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xy-planning-network/writium"
)

func TestAddFn(t *testing.T) {
	// Arrange
	tcs := []struct {
		name   string
		first  string
		second any
		length int
	}{
		{"zero-first", "", nil, 1},
		{"struct-second", "still nil", struct{}{}, 2},
		{"one-good", "one", func() {}, 3},
		{"two-good", "two", func() {}, 4},
		{"repeat", "one", func() {}, 4},
	}

	p := &Parse{}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			require.NotPanics(t, func() { p.AddFn(tc.first, tc.second) })

			// Assert
			require.Len(t, p.fns, tc.length)
		})
	}
}

func TestEnv(t *testing.T) {
	// Act
	name, fn := Env(writium.Production)

	// Assert
	require.Equal(t, "env", name)
	require.Equal(t, "PRODUCTION", fn())
}

func TestFormatDate(t *testing.T) {
	// Arrange
	d := time.Date(2021, time.December, 25, 10, 0, 0, 0, time.UTC)

	tcs := []struct {
		name     string
		layout   string
		expected string
	}{
		{"default", "", "December 25, 2021"},
		{"iso", "2006-01-02", "2021-12-25"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			name, fn := FormatDate(tc.layout)

			// Assert
			require.Equal(t, "formatDate", name)
			require.Equal(t, tc.expected, fn(d))
		})
	}
}

func TestNonce(t *testing.T) {
	// Act
	name, fn := Nonce()

	// Assert
	require.Equal(t, "nonce", name)
	require.NotEqual(t, fn(), fn())
}

func TestRootUrl(t *testing.T) {
	// Arrange
	u, err := url.Parse("https://blog.example.com")
	require.Nil(t, err)

	tcs := []struct {
		name     string
		u        *url.URL
		expected string
	}{
		{"nil", nil, ""},
		{"url", u, "https://blog.example.com"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			name, fn := RootUrl(tc.u)

			// Assert
			require.Equal(t, "rootUrl", name)
			require.Equal(t, tc.expected, fn())
		})
	}
}
