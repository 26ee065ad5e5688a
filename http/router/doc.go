/*
Package router connects an HTTP server to trees of Apis.

A [Router] is a thin wrapper around [mux.Router].
Mount hands every request under the name of an Api to it,
converting the *http.Request with req.FromHTTP, serving it with api.Serve
and writing the result with a resp.Responder.
Plain handlers, e.g. health checks, are registered as a [Route]:
a path and an HTTP method.

Before a request gets to an Api or handler,
the middlewares added with OnEveryRequest are called in the order they were added,
followed by any added for that Api or Route.
*/
package router
