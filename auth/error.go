package auth

import (
	"net/http"

	"github.com/xy-planning-network/writium/api"
)

var (
	ErrForbidden    = api.NewError(http.StatusForbidden, "forbidden")
	ErrUnauthorized = api.NewError(http.StatusUnauthorized, "unauthorized").
			WithHeader("WWW-Authenticate", `Bearer realm="writium"`)
)
