package resp

import (
	"github.com/xy-planning-network/writium/logger"
)

// A ResponderOptFn mutates the provided *Responder in some way.
// A ResponderOptFn is used when constructing a new Responder.
type ResponderOptFn func(*Responder)

// WithInjector sets the ContextInjector used to pull values out of the *http.Request.Context
// into the data logged alongside failures.
func WithInjector(i ContextInjector) ResponderOptFn {
	return func(d *Responder) {
		if i != nil {
			d.injector = i
		}
	}
}

// WithLogger sets the provided implementation of Logger in order to log all statements through it.
//
// If no Logger is provided through this option, a default logger.ColorLogger will be configured.
func WithLogger(log logger.Logger) ResponderOptFn {
	return func(d *Responder) {
		d.logger = log
	}
}
