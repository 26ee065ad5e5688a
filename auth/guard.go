package auth

import (
	"context"
	"errors"

	"github.com/xy-planning-network/writium"
	"github.com/xy-planning-network/writium/api"
	"github.com/xy-planning-network/writium/logger"
)

// An Authenticator verifies tokens.
type Authenticator interface {
	Authenticate(token string) (*Claims, error)
}

// A Guarded is an Api only bearers of a valid token granting its scope can route into.
type Guarded struct {
	inner  api.Api
	auth   Authenticator
	logger logger.Logger
	scope  string
}

// Guard wraps a so requests it claims must carry a token auth verifies
// as granting scope, in an "Authorization: Bearer" header or a "jwt" query param.
//
// Routing a request without a valid token returns ErrUnauthorized;
// with a valid token lacking scope, ErrForbidden.
// Otherwise the request is routed into a with the verified Claims in its context.
func Guard(a api.Api, auth Authenticator, scope string, l logger.Logger) *Guarded {
	if l == nil {
		l = logger.Noop{}
	}

	return &Guarded{inner: a, auth: auth, logger: l, scope: scope}
}

// Name implements api.Api.
func (g *Guarded) Name() []string { return g.inner.Name() }

// Apis exposes the children of the guarded Api, if any.
func (g *Guarded) Apis() []api.Api {
	if c, ok := g.inner.(api.Composite); ok {
		return c.Apis()
	}

	return nil
}

// Dependencies implements api.Dependent.
func (g *Guarded) Dependencies() [][]string {
	if d, ok := g.inner.(api.Dependent); ok {
		return d.Dependencies()
	}

	return nil
}

// Preroute implements api.Prerouter, deferring to the guarded Api.
func (g *Guarded) Preroute(req *api.Request) api.RouteHint {
	return api.Preroute(g.inner, req)
}

// Route implements api.Router.
func (g *Guarded) Route(req *api.Request) (*api.Response, error) {
	token, err := bearer(req.Header().Get("Authorization"))
	if err != nil {
		token = req.Query().Get("jwt")
	}

	claims, err := g.auth.Authenticate(token)
	if err != nil {
		if !errors.Is(err, writium.ErrNotValid) {
			g.logger.Error("failed authenticating", &logger.LogContext{Error: err})
		}

		return api.Postroute(g.inner, nil, ErrUnauthorized)
	}

	if !claims.HasScope(g.scope) {
		g.logger.Warn("missing scope", &logger.LogContext{
			Data: map[string]any{"subject": claims.Subject, "scope": g.scope, "api": api.FullName(g.inner.Name())},
		})
		return api.Postroute(g.inner, nil, ErrForbidden)
	}

	ctx := context.WithValue(req.Context(), writium.ClaimsKey, claims)
	return api.Route(g.inner, req.WithContext(ctx))
}

// ClaimsFromContext retrieves the Claims Guard verified for a request.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(writium.ClaimsKey).(*Claims)
	return c, ok && c != nil
}
