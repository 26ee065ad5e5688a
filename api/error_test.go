package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xy-planning-network/writium/api"
)

func TestErrorIs(t *testing.T) {
	tcs := []struct {
		name     string
		err      error
		target   error
		expected bool
	}{
		{"same", api.ErrApiNotFound, api.ErrApiNotFound, true},
		{"equal", api.NewError(http.StatusNotFound, "api not found"), api.ErrApiNotFound, true},
		{"with-header", api.ErrNotSupported.WithHeader("Allow", "GET"), api.ErrNotSupported, true},
		{"wrapped", fmt.Errorf("oops: %w", api.ErrCallDepth), api.ErrCallDepth, true},
		{"other-status", api.NewError(http.StatusGone, "api not found"), api.ErrApiNotFound, false},
		{"other-description", api.NewError(http.StatusNotFound, "nope"), api.ErrApiNotFound, false},
		{"not-api", errors.New("api not found"), api.ErrApiNotFound, false},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, errors.Is(tc.err, tc.target))
		})
	}
}

func TestErrorWithHeader(t *testing.T) {
	// Act
	err := api.ErrNotSupported.WithHeader("Allow", "GET")

	// Assert
	require.Equal(t, "GET", err.Header().Get("Allow"))
	require.Empty(t, api.ErrNotSupported.Header().Get("Allow"))
	require.Equal(t, http.StatusMethodNotAllowed, err.Status())
	require.Equal(t, "not supported", err.Error())
	require.Equal(t, "not supported", err.Description())
}
