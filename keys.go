package writium

// A Key stashes request-scoped values in a context.Context.
type Key string

const (
	// ClaimsKey stashes the verified JWT claims of an HTTP request.
	ClaimsKey Key = "ClaimsKey"

	// IpAddrKey stashes the IP address of an HTTP request being handled by writium.
	IpAddrKey Key = "IpAddrKey"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey Key = "RequestIDKey"
)

// String formats the stringified key with additional contextual information
func (k Key) String() string {
	return "writium context key: " + string(k)
}
