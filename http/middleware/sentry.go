package middleware

import (
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"

	"github.com/xy-planning-network/writium"
)

// ReportPanic recovers panics in the handlers it wraps,
// reporting them to Sentry and responding with a 500.
//
// In development, panics are left to crash the request as usual.
func ReportPanic(env writium.Environment) Adapter {
	if env.IsDevelopment() {
		return NoopAdapter
	}

	sh := sentryhttp.New(sentryhttp.Options{
		Repanic:         true,
		WaitForDelivery: true,
	})

	return func(h http.Handler) http.Handler {
		return recoverPanic(sh.Handle(h))
	}
}

// recoverPanic turns a panic, already reported, into a 500.
func recoverPanic(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				writeMsg(w, http.StatusInternalServerError, "internal error")
			}
		}()

		h.ServeHTTP(w, r)
	})
}
