package writium_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/writium"
)

func TestKeyString(t *testing.T) {
	require.Equal(t, "writium context key: RequestIDKey", writium.RequestIDKey.String())
	require.Equal(t, "writium context key: IpAddrKey", writium.IpAddrKey.String())
}
