package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/xy-planning-network/writium"
)

// A Request is an inbound call being routed through a tree of Apis.
//
// A Request owns an ordered sequence of path segments.
// Every layer claiming a name prefix consumes those segments before delegating inward,
// so the remaining path only ever shrinks while a Request descends.
type Request struct {
	ctx    context.Context
	method string
	url    *url.URL
	path   []string
	header http.Header
	body   io.Reader
}

// NewRequest constructs a *Request for the HTTP method and target.
//
// The path of target must be rooted.
// "." segments are dropped and ".." segments pop the segment before them.
// A ".." that would escape the root returns ErrNotValid.
func NewRequest(method, target string) (*Request, error) {
	u, err := url.ParseRequestURI(target)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", writium.ErrNotValid, err)
	}

	segs, err := splitPath(u.Path)
	if err != nil {
		return nil, err
	}

	return &Request{
		ctx:    context.Background(),
		method: strings.ToUpper(method),
		url:    u,
		path:   segs,
		header: make(http.Header),
		body:   http.NoBody,
	}, nil
}

// splitPath breaks a rooted path into its segments.
func splitPath(p string) ([]string, error) {
	if !strings.HasPrefix(p, "/") {
		return nil, fmt.Errorf("%w: path %q is not rooted", writium.ErrNotValid, p)
	}

	segs := make([]string, 0, strings.Count(p, "/"))
	for _, seg := range strings.Split(p[1:], "/") {
		switch seg {
		case ".":
		case "..":
			if len(segs) == 0 {
				return nil, fmt.Errorf("%w: path %q escapes root", writium.ErrNotValid, p)
			}
			segs = segs[:len(segs)-1]
		default:
			segs = append(segs, seg)
		}
	}

	return segs, nil
}

// Consume removes and returns the first path segment if it equals expected.
// Otherwise, Consume leaves the path untouched and returns false.
func (r *Request) Consume(expected string) (string, bool) {
	if len(r.path) == 0 || r.path[0] != expected {
		return "", false
	}

	return r.Next()
}

// Next removes and returns the first path segment, whatever it is.
// Next returns false when no segments remain.
func (r *Request) Next() (string, bool) {
	if len(r.path) == 0 {
		return "", false
	}

	seg := r.path[0]
	r.path = r.path[1:]
	return seg, true
}

// restore splices segs back onto the front of the path.
// Only a failed prefix test may call restore, with exactly the segments it consumed.
func (r *Request) restore(segs []string) {
	if len(segs) == 0 {
		return
	}

	path := make([]string, 0, len(segs)+len(r.path))
	path = append(path, segs...)
	r.path = append(path, r.path...)
}

// Path returns a copy of the segments not yet consumed.
func (r *Request) Path() []string {
	return append([]string(nil), r.path...)
}

// Len reports how many segments have not yet been consumed.
func (r *Request) Len() int { return len(r.path) }

// Body returns the request body.
// The body can only be read once.
func (r *Request) Body() io.Reader { return r.body }

// Context returns the context.Context of the Request.
func (r *Request) Context() context.Context { return r.ctx }

// Header returns the request headers.
func (r *Request) Header() http.Header { return r.header }

// Method returns the upper-cased HTTP method.
func (r *Request) Method() string { return r.method }

// Query returns the parsed query parameters of the target URL.
func (r *Request) Query() url.Values { return r.url.Query() }

// URL returns the target the Request was constructed with.
// Consuming segments does not change it.
func (r *Request) URL() *url.URL { return r.url }

// WithBody replaces the body of r.
func (r *Request) WithBody(body io.Reader) *Request {
	if body == nil {
		body = http.NoBody
	}

	r.body = body
	return r
}

// WithBytes replaces the body of r with b.
func (r *Request) WithBytes(b []byte) *Request {
	return r.WithBody(bytes.NewReader(b))
}

// WithContext replaces the context.Context of r.
func (r *Request) WithContext(ctx context.Context) *Request {
	if ctx != nil {
		r.ctx = ctx
	}

	return r
}

// WithHeader sets key to val in the headers of r.
func (r *Request) WithHeader(key, val string) *Request {
	r.header.Set(key, val)
	return r
}

// WithHeaders replaces all headers of r.
func (r *Request) WithHeaders(h http.Header) *Request {
	if h == nil {
		h = make(http.Header)
	}

	r.header = h
	return r
}

func (r *Request) String() string {
	return r.method + " " + r.url.RequestURI()
}
