package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/xy-planning-network/writium"
)

// DefaultTTL is how long a token Issue signs stays valid by default.
const DefaultTTL = 24 * time.Hour

// Service issues and verifies HS256 signed JWTs.
type Service struct {
	issuer string
	key    []byte
	now    func() time.Time
	parser *jwt.Parser
	ttl    time.Duration
}

// A ServiceOptFn configures a *Service.
type ServiceOptFn func(*Service)

// WithIssuer sets the "iss" claim of issued tokens, which verified tokens must carry too.
func WithIssuer(iss string) ServiceOptFn {
	return func(s *Service) {
		s.issuer = iss
	}
}

// WithTTL sets how long issued tokens stay valid.
func WithTTL(ttl time.Duration) ServiceOptFn {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// NewService constructs a *Service signing with jwtKey.
// NewService returns writium.ErrBadConfig if jwtKey is empty.
func NewService(jwtKey string, opts ...ServiceOptFn) (*Service, error) {
	if jwtKey == "" {
		return nil, fmt.Errorf(`%w: jwt key cannot be ""`, writium.ErrBadConfig)
	}

	s := &Service{
		issuer: "writium",
		key:    []byte(jwtKey),
		now:    time.Now,
		parser: &jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}},
		ttl:    DefaultTTL,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}
