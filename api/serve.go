package api

import "context"

// MaxCalls bounds how many follow-up calls Serve makes for one *Request.
const MaxCalls = 16

// Serve routes req through the tree rooted at root and returns the final result.
//
// The name of root is consumed from req first; ErrApiNotFound is returned if it does not match.
// While the resulting *Response carries a follow-up *Request,
// Serve makes that call through root as well,
// and replaces the *Response with the call's result, passed through the Callback if one is set.
// A follow-up call's own follow-up calls are resolved before its Callback runs.
// Making more than MaxCalls follow-up calls returns ErrCallDepth.
func Serve(root Api, req *Request) (*Response, error) {
	s := &server{root: root}
	return s.serve(req)
}

type server struct {
	root  Api
	calls int
}

func (s *server) serve(req *Request) (*Response, error) {
	hint := Preroute(s.root, req)
	if !hint.Claimed() {
		return nil, ErrApiNotFound
	}

	ctx := req.Context()
	res, err := Route(s.root, hint.Request())
	for err == nil && res != nil && res.Call() != nil {
		call, cb := res.TakeCall()
		if s.calls++; s.calls > MaxCalls {
			return nil, ErrCallDepth
		}

		if call.Context() == context.Background() {
			call.WithContext(ctx)
		}

		res, err = s.serve(call)
		if cb != nil {
			res, err = cb(res, err)
		}
	}

	return res, err
}
