package router

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/xy-planning-network/writium"
	"github.com/xy-planning-network/writium/api"
	"github.com/xy-planning-network/writium/http/middleware"
	"github.com/xy-planning-network/writium/http/req"
	"github.com/xy-planning-network/writium/http/resp"
)

// A Route maps a path and HTTP method to an [http.HandlerFunc].
// Additional [middleware.Adapter] can be called when a server handles
// a request matching the Route.
type Route struct {
	Path        string
	Method      string
	Handler     http.HandlerFunc
	Middlewares []middleware.Adapter
}

// Router routes HTTP requests into trees of Apis and plain handlers.
type Router struct {
	Env           writium.Environment
	everyReqStack []middleware.Adapter
	r             *mux.Router
	responder     *resp.Responder
}

// New constructs a [*Router] for the given environment,
// writing the results of routing into Apis with d.
//
// Requests matching nothing are answered with api.ErrApiNotFound.
func New(env writium.Environment, d *resp.Responder) *Router {
	if d == nil {
		d = resp.NewResponder()
	}

	r := mux.NewRouter()
	// Paths reach Apis as sent; *api.Request resolves dot segments itself.
	r.SkipClean(true)

	rt := &Router{Env: env, r: r, responder: d}
	rt.HandleNotFound(func(w http.ResponseWriter, r *http.Request) {
		d.Err(w, r, api.ErrApiNotFound)
	})

	return rt
}

// Mount routes every request whose path begins with the name of root into root,
// applying the middlewares after those set with OnEveryRequest.
//
// A request whose path escapes the root is answered with a 400.
func (r *Router) Mount(root api.Api, middlewares ...middleware.Adapter) {
	prefix := api.FullName(root.Name())
	mws := append(append([]middleware.Adapter(nil), r.everyReqStack...), middlewares...)
	h := middleware.Chain(
		middleware.ReportPanic(r.Env)(resp.HandlerFunc(r.responder, root, req.FromHTTP)),
		mws...,
	)

	if prefix == "/" {
		r.r.PathPrefix(prefix).Handler(h)
		return
	}

	// Match the name exactly or as a directory, never as a prefix of a longer segment.
	r.r.Path(prefix).Handler(h)
	r.r.PathPrefix(strings.TrimSuffix(prefix, "/") + "/").Handler(h)
}

// Handle applies the [Route] to the [*Router].
func (r *Router) Handle(route Route) {
	r.HandleRoutes([]Route{route})
}

// HandleNotFound sets the provided [http.HandlerFunc] as the default function
// for when no other registered Route is matched.
func (r *Router) HandleNotFound(handler http.HandlerFunc) {
	r.r.NotFoundHandler = middleware.Chain(
		middleware.ReportPanic(r.Env)(handler),
		r.everyReqStack...,
	)
}

// HandleRoutes registers the set of Routes on the Router
// and includes all the [middleware.Adapter] on each Route.
// Any [middleware.Adapter] already assigned to a Route is appended to middlewares,
// so are called after the default set.
func (r *Router) HandleRoutes(routes []Route, middlewares ...middleware.Adapter) {
	for _, route := range routes {
		mws := append(append([]middleware.Adapter(nil), r.everyReqStack...), middlewares...)
		mws = append(mws, route.Middlewares...)
		handler := middleware.Chain(middleware.ReportPanic(r.Env)(route.Handler), mws...)
		r.r.Handle(route.Path, handler).Methods(route.Method)
	}
}

// OnEveryRequest appends the middlewares to the existing stack
// that the [*Router] will apply to every request.
//
// Call OnEveryRequest before Mount, Handle, HandleNotFound or HandleRoutes:
// handlers already registered keep the stack they were registered with.
// The not found handler is registered again to pick up the new stack.
func (r *Router) OnEveryRequest(middlewares ...middleware.Adapter) {
	r.everyReqStack = append(r.everyReqStack, middlewares...)
	r.HandleNotFound(func(w http.ResponseWriter, req *http.Request) {
		r.responder.Err(w, req, api.ErrApiNotFound)
	})
}

// ServeHTTP responds to an HTTP request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.r.ServeHTTP(w, req)
}
