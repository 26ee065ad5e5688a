package api

// A RouteHint is the outcome of asking an Api whether a Request belongs to it.
//
// Exactly one *Request travels with a RouteHint.
// Whoever receives the RouteHint must continue with that *Request
// and drop the one it passed in.
type RouteHint struct {
	claimed bool
	req     *Request
}

// CallMe claims req, whose path has had the claiming Api's name removed.
func CallMe(req *Request) RouteHint { return RouteHint{claimed: true, req: req} }

// NotMe declines req.
func NotMe(req *Request) RouteHint { return RouteHint{req: req} }

// Claimed reports whether the RouteHint is a CallMe.
func (h RouteHint) Claimed() bool { return h.claimed }

// Request hands back the *Request carried by the RouteHint.
func (h RouteHint) Request() *Request { return h.req }

func (h RouteHint) String() string {
	if h.claimed {
		return "CallMe"
	}

	return "NotMe"
}
