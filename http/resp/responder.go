package resp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/xy-planning-network/writium/api"
	"github.com/xy-planning-network/writium/logger"
)

const responderFrames = 1

// Responder writes the results of routing an *api.Request as HTTP responses.
//
// An *api.Response is written as is: its status, headers and payload.
// An *api.Error is written as its status, headers and a JSON body {"msg": "<description>"}.
// Any other error is logged and written as a 500 with the body {"msg": "internal error"}.
//
// Most oftentimes, setting up a single instance of a Responder suffices for an application.
type Responder struct {
	injector ContextInjector
	logger   logger.Logger

	// Pool of *bytes.Buffer to prerender error bodies into
	pool *sync.Pool
}

// NewResponder constructs a *Responder using the ResponderOptFns passed in.
func NewResponder(opts ...ResponderOptFn) *Responder {
	d := &Responder{
		injector: NoopInjector{},
		pool:     &sync.Pool{New: func() any { return new(bytes.Buffer) }},
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = logger.New()
	}

	if l, ok := d.logger.(logger.SkipLogger); ok {
		d.logger = l.AddSkip(responderFrames)
	}

	return d
}

// Err writes err as the response to r.
func (doer *Responder) Err(w http.ResponseWriter, r *http.Request, err error) error {
	return doer.Write(w, r, nil, err)
}

// Write writes res, or err if it is not nil, as the response to r.
//
// If the context of r is done, nothing is written and ErrDone returns.
// If both res and err are nil, ErrMissingData returns after a 500 is written.
func (doer *Responder) Write(w http.ResponseWriter, r *http.Request, res *api.Response, err error) error {
	select {
	case <-r.Context().Done():
		return ErrDone
	default:
	}

	if err != nil {
		return doer.writeErr(w, r, err)
	}

	if res == nil {
		err := fmt.Errorf("%w: no *api.Response", ErrMissingData)
		doer.writeErr(w, r, err)
		return err
	}

	for k, vals := range res.Header() {
		for _, v := range vals {
			w.Header().Add(k, v)
		}
	}

	if body := res.Body(); len(body) > 0 {
		if ct := res.ContentType(); ct != "" {
			w.Header().Set("Content-Type", ct)
		}
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.WriteHeader(res.Status())

		if _, err := w.Write(body); err != nil {
			doer.logger.Warn("failed writing response", doer.logContext(r, err))
			return err
		}

		return nil
	}

	w.WriteHeader(res.Status())
	return nil
}

// writeErr renders err as {"msg": "<description>"}.
func (doer *Responder) writeErr(w http.ResponseWriter, r *http.Request, err error) error {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		doer.logger.Error(err.Error(), doer.logContext(r, err))
		apiErr = api.NewError(http.StatusInternalServerError, internalDescription)
	}

	b := doer.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer doer.pool.Put(b)

	if err := json.NewEncoder(b).Encode(map[string]string{"msg": apiErr.Description()}); err != nil {
		doer.logger.Error(err.Error(), doer.logContext(r, err))
		http.Error(w, internalDescription, http.StatusInternalServerError)
		return err
	}

	for k, vals := range apiErr.Header() {
		for _, v := range vals {
			w.Header().Add(k, v)
		}
	}
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(apiErr.Status())

	if _, err := b.WriteTo(w); err != nil {
		return err
	}

	return nil
}

func (doer *Responder) logContext(r *http.Request, err error) *logger.LogContext {
	data := make(map[string]any)
	doer.injector.Inject(data, r.Context())
	if len(data) == 0 {
		data = nil
	}

	return &logger.LogContext{Request: r, Error: err, Data: data}
}
