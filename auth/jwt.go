package auth

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/golang-jwt/jwt/v4"

	"github.com/xy-planning-network/writium"
)

// Claims are what a writium token asserts about its bearer.
type Claims struct {
	jwt.RegisteredClaims
	Scopes []string `json:"scopes,omitempty"`
}

// HasScope reports whether c grants scope.
// Every Claims has the empty scope.
func (c *Claims) HasScope(scope string) bool {
	if scope == "" {
		return true
	}

	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}

	return false
}

// Issue signs a token for subject granting scopes.
func (s *Service) Issue(subject string, scopes ...string) (string, error) {
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Scopes: scopes,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("%w: %s", writium.ErrUnexpected, err)
	}

	return signed, nil
}

// Authenticate verifies token, returning the Claims it carries.
// Authenticate returns writium.ErrNotValid for a token that is malformed, expired,
// signed with another key or method, or issued by someone else.
func (s *Service) Authenticate(token string) (*Claims, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: no token", writium.ErrNotValid)
	}

	claims := new(Claims)
	_, err := s.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", writium.ErrNotValid, err)
	}

	if !claims.VerifyIssuer(s.issuer, true) {
		return nil, fmt.Errorf("%w: issuer %q", writium.ErrNotValid, claims.Issuer)
	}

	return claims, nil
}

// AuthenticateJWT decodes the claims of the token set on the "jwt" query param.
// If no token is set in the params, AuthenticateJWT returns writium.ErrNotValid.
func (s *Service) AuthenticateJWT(v url.Values) (*Claims, error) {
	reqToken := v.Get("jwt")
	if reqToken == "" {
		return nil, fmt.Errorf("no jwt param set: %w", writium.ErrNotValid)
	}

	return s.Authenticate(reqToken)
}

// bearer pulls the token out of an "Authorization: Bearer <token>" header value.
func bearer(header string) (string, error) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", errors.New("no bearer token")
	}

	return strings.TrimSpace(token), nil
}
