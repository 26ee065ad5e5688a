/*
Package api routes requests through a tree of capability handlers.

An [Api] names the path segments it owns.
Everything else it can do is optional:
deciding whether a [Request] is its own, handling HTTP verbs,
or rewriting the results it produces.
A [Namespace] is an Api composed of other Apis,
tried in the order they were bound.

	root := api.NewNamespace(nil).Bind(
		api.NewNamespace([]string{"admin", "cache"}).Bind(stats),
		articles,
	)

	req, err := api.NewRequest(http.MethodGet, "/articles/hello-world")
	if err != nil {
		return err
	}

	res, err := api.Serve(root, req)

Failures are reported as an [*Error] carrying an HTTP status code,
e.g. [ErrApiNotFound] when no Api claims a Request
and [ErrNotSupported] when the Api claiming it has no handler for its method.
*/
package api
