package api

import (
	"net/http"
	"strings"
)

// An Api is a routable unit of functionality.
//
// Name identifies an Api among its siblings by the path segments it owns.
// Name must return the same segments for the lifetime of the Api.
//
// Everything else an Api can do is optional and discovered by type assertion:
// [Dependent], [Prerouter], [Router], [Postrouter],
// and one interface per HTTP verb ([Getter], [Putter], [Poster], [Patcher], [Deleter]).
// Use the package functions [Preroute], [Route] and [Postroute]
// to call into an Api so its defaults apply.
type Api interface {
	Name() []string
}

// A Dependent names other Apis, by their full path from the root,
// that must be bound for it to work.
// See [CheckDependencies].
type Dependent interface {
	Dependencies() [][]string
}

// A Prerouter overrides how an Api decides whether a *Request is its own.
type Prerouter interface {
	Preroute(req *Request) RouteHint
}

// A Router overrides dispatching a claimed *Request.
// A Router is responsible for applying its own postroute.
type Router interface {
	Route(req *Request) (*Response, error)
}

// A Postrouter replaces or augments the results an Api produces,
// e.g. substituting a default for a recoverable failure.
type Postrouter interface {
	Postroute(res *Response, err error) (*Response, error)
}

// A Getter handles GET.
type Getter interface {
	Get(req *Request) (*Response, error)
}

// A Putter handles PUT.
type Putter interface {
	Put(req *Request) (*Response, error)
}

// A Poster handles POST.
type Poster interface {
	Post(req *Request) (*Response, error)
}

// A Patcher handles PATCH.
type Patcher interface {
	Patch(req *Request) (*Response, error)
}

// A Deleter handles DELETE.
type Deleter interface {
	Delete(req *Request) (*Response, error)
}

// Preroute asks a whether req belongs to it.
//
// Unless a is a Prerouter, Preroute consumes the segments of a.Name one at a time.
// If all of them match, CallMe carries req with those segments removed.
// If any does not, the segments already consumed are put back
// and NotMe carries req with its path exactly as it arrived.
func Preroute(a Api, req *Request) RouteHint {
	if p, ok := a.(Prerouter); ok {
		return p.Preroute(req)
	}

	name := a.Name()
	consumed := make([]string, 0, len(name))
	for _, seg := range name {
		got, ok := req.Consume(seg)
		if !ok {
			req.restore(consumed)
			return NotMe(req)
		}

		consumed = append(consumed, got)
	}

	return CallMe(req)
}

// Route dispatches a *Request a has claimed.
//
// Unless a is a Router, Route calls the handler matching the request method
// and passes its results through Postroute.
// Methods a has no handler for, and methods outside GET, PUT, POST, PATCH and DELETE,
// produce ErrNotSupported.
func Route(a Api, req *Request) (*Response, error) {
	if r, ok := a.(Router); ok {
		return r.Route(req)
	}

	res, err := dispatch(a, req)
	return Postroute(a, res, err)
}

// Postroute passes results through a, if a is a Postrouter.
func Postroute(a Api, res *Response, err error) (*Response, error) {
	if p, ok := a.(Postrouter); ok {
		return p.Postroute(res, err)
	}

	return res, err
}

// dispatch picks the verb handler of a for req.
func dispatch(a Api, req *Request) (*Response, error) {
	switch req.Method() {
	case http.MethodGet:
		if h, ok := a.(Getter); ok {
			return h.Get(req)
		}

	case http.MethodPut:
		if h, ok := a.(Putter); ok {
			return h.Put(req)
		}

	case http.MethodPost:
		if h, ok := a.(Poster); ok {
			return h.Post(req)
		}

	case http.MethodPatch:
		if h, ok := a.(Patcher); ok {
			return h.Patch(req)
		}

	case http.MethodDelete:
		if h, ok := a.(Deleter); ok {
			return h.Delete(req)
		}
	}

	return nil, ErrNotSupported
}

// FullName joins name into the path it represents, e.g. "/admin/cache".
func FullName(name []string) string {
	return "/" + strings.Join(name, "/")
}
