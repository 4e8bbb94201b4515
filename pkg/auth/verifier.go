package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoKeys       = errors.New("auth: no verification key configured")
	ErrMissingClaim = errors.New("auth: token has no subject")
)

// Claims is the part of an access token the API relies on.
type Claims struct {
	Subject string
	Email   string
}

// Verifier checks HS256 tokens against a shared secret and RS256 tokens
// against a JWKS endpoint. Either source may be absent.
type Verifier struct {
	secret []byte
	jwks   *Provider
}

func NewVerifier(secret string, jwks *Provider) *Verifier {
	v := &Verifier{jwks: jwks}
	if secret != "" {
		v.secret = []byte(secret)
	}
	return v
}

func (v *Verifier) keyFunc(token *jwt.Token) (interface{}, error) {
	switch token.Method.(type) {
	case *jwt.SigningMethodHMAC:
		if v.secret == nil {
			return nil, fmt.Errorf("%w: HS256 token but JWT_SECRET is not set", ErrNoKeys)
		}
		return v.secret, nil
	case *jwt.SigningMethodRSA:
		if v.jwks == nil {
			return nil, fmt.Errorf("%w: RS256 token but JWKS_URL is not set", ErrNoKeys)
		}
		kid, _ := token.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("auth: RS256 token has no kid")
		}
		return v.jwks.Key(context.Background(), kid)
	default:
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
}

// Verify parses and validates a raw token and returns its claims.
func (v *Verifier) Verify(raw string) (*Claims, error) {
	token, err := jwt.Parse(raw, v.keyFunc, jwt.WithValidMethods([]string{"HS256", "RS256"}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("auth: invalid token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("auth: invalid claims")
	}

	sub, _ := mapClaims["sub"].(string)
	if sub == "" {
		return nil, ErrMissingClaim
	}
	email, _ := mapClaims["email"].(string)

	return &Claims{Subject: sub, Email: email}, nil
}
