package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/xy-planning-network/writium"
)

// A Callback transforms the result of a follow-up call before it replaces the Response that made the call.
type Callback func(res *Response, err error) (*Response, error)

// A Response is what an Api produces for a *Request.
//
// Besides a status, headers and a payload,
// a Response may carry a follow-up *Request for [Serve] to make on behalf of the Api,
// and a Callback to apply to that call's result.
type Response struct {
	status      int
	header      http.Header
	contentType string
	body        []byte
	call        *Request
	callback    Callback
}

// NewResponse constructs an empty *Response with the HTTP status code.
func NewResponse(status int) *Response {
	return &Response{status: status, header: make(http.Header)}
}

// Body returns the payload of r.
func (r *Response) Body() []byte { return r.body }

// Call returns the follow-up *Request r carries, if any.
func (r *Response) Call() *Request { return r.call }

// Callback returns the Callback r carries, if any.
func (r *Response) Callback() Callback { return r.callback }

// ContentType returns the media type of the payload of r.
func (r *Response) ContentType() string { return r.contentType }

// Header returns the headers of r.
func (r *Response) Header() http.Header { return r.header }

// Status returns the HTTP status code of r.
func (r *Response) Status() int { return r.status }

// TakeCall removes and returns the follow-up *Request and Callback of r.
func (r *Response) TakeCall() (*Request, Callback) {
	req, cb := r.call, r.callback
	r.call, r.callback = nil, nil
	return req, cb
}

// WithBody sets the payload of r to b of media type contentType.
func (r *Response) WithBody(contentType string, b []byte) *Response {
	r.contentType = contentType
	r.body = b
	return r
}

// WithCall asks the caller to make req on behalf of r.
func (r *Response) WithCall(req *Request) *Response {
	r.call = req
	return r
}

// WithCallback asks the caller to make req on behalf of r
// and pass its result through cb.
func (r *Response) WithCallback(req *Request, cb Callback) *Response {
	r.call = req
	r.callback = cb
	return r
}

// WithHeader sets key to val in the headers of r.
func (r *Response) WithHeader(key, val string) *Response {
	r.header.Set(key, val)
	return r
}

// WithJSON sets the payload of r to v encoded as JSON.
func (r *Response) WithJSON(v any) (*Response, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", writium.ErrBadFormat, err)
	}

	return r.WithBody("application/json", b), nil
}
