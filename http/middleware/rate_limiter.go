package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultRate is how many requests per second a Visitor is allowed by default.
	DefaultRate rate.Limit = 5

	// DefaultBurst is how many requests a Visitor may burst by default.
	DefaultBurst = 20

	visitorTTL = time.Hour
)

// A Visitor tracks a rate limiter and last seen time.
type Visitor struct {
	LastSeen time.Time
	Limiter  *rate.Limiter
}

// A Visitors maps a Visitor to an IP address.
type Visitors struct {
	burst int
	limit rate.Limit
	swept time.Time
	val   map[string]Visitor
	sync.Mutex
}

// NewVisitors constructs a *Visitors allowing each Visitor limit requests per second with bursts of up to burst.
// A non-positive limit or burst falls back to DefaultRate or DefaultBurst.
func NewVisitors(limit rate.Limit, burst int) *Visitors {
	if limit <= 0 {
		limit = DefaultRate
	}

	if burst <= 0 {
		burst = DefaultBurst
	}

	return &Visitors{burst: burst, limit: limit, swept: time.Now(), val: make(map[string]Visitor)}
}

// Fetch retrieves the Visitor for the given ip creating a new Visitor if not seen.
func (vs *Visitors) Fetch(ip string) Visitor {
	vs.Lock()
	defer vs.Unlock()

	v, ok := vs.val[ip]
	if !ok {
		v = Visitor{Limiter: rate.NewLimiter(vs.limit, vs.burst)}
	}

	v.LastSeen = time.Now().UTC()
	vs.val[ip] = v
	return v
}

// Len reports how many Visitors are tracked.
func (vs *Visitors) Len() int {
	vs.Lock()
	defer vs.Unlock()

	return len(vs.val)
}

// cleanup deletes every Visitor not seen in over an hour.
// cleanup sweeps at most once every visitorTTL.
func (vs *Visitors) cleanup() {
	vs.Lock()
	defer vs.Unlock()

	if time.Since(vs.swept) < visitorTTL {
		return
	}

	vs.swept = time.Now()
	for ip, v := range vs.val {
		if time.Since(v.LastSeen) > visitorTTL {
			delete(vs.val, ip)
		}
	}
}

// RateLimit responds 429 to visitors making requests faster than visitors allows.
//
// Visitors are told apart by IP address; see InjectIPAddress.
func RateLimit(visitors *Visitors) Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer visitors.cleanup()

			if !visitors.Fetch(ipAddress(r)).Limiter.Allow() {
				writeMsg(w, http.StatusTooManyRequests, "too many requests")
				return
			}

			h.ServeHTTP(w, r)
		})
	}
}
