package resp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xy-planning-network/writium"
)

func TestDefaultInjector(t *testing.T) {
	// Arrange
	tcs := []struct {
		name     string
		keys     []writium.Key
		props    map[string]any
		ctx      context.Context
		expected map[string]any
	}{
		{"both-nil", nil, nil, nil, nil},
		{"ctx-nil", nil, map[string]any{}, nil, map[string]any{}},
		{"keys-nil", nil, map[string]any{}, context.Background(), map[string]any{}},
		{"no-values", []writium.Key{writium.RequestIDKey}, map[string]any{}, context.Background(), map[string]any{}},
		{
			"adds-values",
			[]writium.Key{writium.RequestIDKey, writium.IpAddrKey},
			map[string]any{"path": "/articles"},
			context.WithValue(context.Background(), writium.RequestIDKey, "abc"),
			map[string]any{"path": "/articles", string(writium.RequestIDKey): "abc"},
		},
		{
			"overwrites",
			[]writium.Key{writium.IpAddrKey},
			map[string]any{string(writium.IpAddrKey): "old"},
			context.WithValue(context.Background(), writium.IpAddrKey, "127.0.0.1"),
			map[string]any{string(writium.IpAddrKey): "127.0.0.1"},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			i := DefaultInjector{tc.keys}

			// Act
			require.NotPanics(t, func() { i.Inject(tc.props, tc.ctx) })

			// Assert
			require.Equal(t, tc.expected, tc.props)
		})
	}
}
