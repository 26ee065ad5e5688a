/*
Package middleware defines what a middleware is in writium and a set of basic middlewares.

The available middlewares are:
  - CORS
  - ForceHTTPS
  - InjectIPAddress
  - LogRequest
  - RateLimit
  - ReportPanic
  - RequestID

Due to the amount of configuration required, middleware does not provide a default middleware chain.
Instead, the following can be copy-pasted:

	vs := middleware.NewVisitors(middleware.DefaultRate, middleware.DefaultBurst)
	adpts := []middleware.Adapter{
		middleware.ReportPanic(env),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(log),
		middleware.ForceHTTPS(env),
		middleware.CORS(origin),
		middleware.RateLimit(vs),
	}
*/
package middleware
