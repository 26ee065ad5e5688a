package api

import (
	"github.com/xy-planning-network/writium/logger"
)

// A Namespace is an Api composed of other Apis.
//
// A Namespace routes a *Request to the first of its children, in bind order, that claims it.
// Once a child claims a *Request, siblings after it are never tried, even if the child fails.
type Namespace struct {
	name      []string
	apis      []Api
	logger    logger.Logger
	postroute func(*Response, error) (*Response, error)
}

// A NamespaceOption configures a *Namespace.
type NamespaceOption func(*Namespace)

// WithLogger sets the logger.Logger a *Namespace reports routing decisions to.
func WithLogger(l logger.Logger) NamespaceOption {
	return func(n *Namespace) {
		if l != nil {
			n.logger = l
		}
	}
}

// WithPostroute sets the function every result leaving a *Namespace passes through.
func WithPostroute(fn func(*Response, error) (*Response, error)) NamespaceOption {
	return func(n *Namespace) {
		n.postroute = fn
	}
}

// NewNamespace constructs a *Namespace owning the path segments of name.
// An empty name claims every *Request.
func NewNamespace(name []string, opts ...NamespaceOption) *Namespace {
	n := &Namespace{
		name:   append([]string(nil), name...),
		logger: logger.Noop{},
	}
	for _, opt := range opts {
		opt(n)
	}

	return n
}

// Bind appends apis to the children of n.
// Bind is not safe to call once n is serving.
func (n *Namespace) Bind(apis ...Api) *Namespace {
	for _, a := range apis {
		if a != nil {
			n.apis = append(n.apis, a)
		}
	}

	return n
}

// Apis returns the children of n in bind order.
func (n *Namespace) Apis() []Api { return append([]Api(nil), n.apis...) }

// Name implements Api.
func (n *Namespace) Name() []string { return n.name }

// Route implements Router.
//
// The name of n must already be consumed from req.
// Route returns ErrApiNotFound if no child claims req.
func (n *Namespace) Route(req *Request) (*Response, error) {
	for _, a := range n.apis {
		hint := Preroute(a, req)
		req = hint.Request()
		if !hint.Claimed() {
			continue
		}

		n.logger.Debug("api found", &logger.LogContext{
			Data: map[string]any{"api": FullName(a.Name()), "namespace": FullName(n.name), "rest": req.Path()},
		})

		return n.Postroute(Route(a, req))
	}

	return n.Postroute(nil, ErrApiNotFound)
}

// Postroute implements Postrouter.
func (n *Namespace) Postroute(res *Response, err error) (*Response, error) {
	if n.postroute == nil {
		return res, err
	}

	return n.postroute(res, err)
}
